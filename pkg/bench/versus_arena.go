package bench

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/mnk-mcts/pkg/agent"
	"github.com/IlikeChooros/mnk-mcts/pkg/mnk"
)

/*
Arena benchmark subpackage, allows to play a series of games between two
different agents, on the same m,n,k board.
*/

type VersusArena struct {
	VersusArenaStats
	Player1 agent.Factory
	Player2 agent.Factory
	// board and per-move time limit of every game
	M, N, K  int
	Timeout  time.Duration
	NGames   int
	NWorkers int
	// forfeit games of players exceeding the timeout
	StrictTimeout bool

	forfeits atomic.Uint32
	ctx      context.Context
	logger   zerolog.Logger
}

func NewVersusArena(player1, player2 agent.Factory) *VersusArena {
	return &VersusArena{
		Player1:  player1,
		Player2:  player2,
		M:        3,
		N:        3,
		K:        3,
		Timeout:  time.Second,
		NGames:   100,
		NWorkers: 2,
		ctx:      context.Background(),
		logger:   zerolog.Nop(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) WithLogger(logger zerolog.Logger) *VersusArena {
	va.logger = logger
	return va
}

func (va *VersusArena) Setup(m, n, k int, timeout time.Duration, nGames, nWorkers int) *VersusArena {
	va.M, va.N, va.K = m, n, k
	va.Timeout = timeout
	va.NGames = nGames
	va.NWorkers = nWorkers
	return va
}

func (va *VersusArena) Forfeits() int {
	return int(va.forfeits.Load())
}

// Play all the games, distributing them equally between the workers.
// Sides alternate between the games, player 1 moves first in the even ones.
func (va *VersusArena) Run(listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = DefaultListener{}
	}

	workers := max(1, min(va.NWorkers, va.NGames))
	group, ctx := errgroup.WithContext(va.ctx)

	next := 0
	for id := 0; id < workers; id++ {
		games := va.NGames / workers
		if id < va.NGames%workers {
			games++
		}
		first := next
		next += games

		id := id
		group.Go(func() error {
			return va.worker(ctx, id, first, games, listener)
		})
	}

	err := group.Wait()
	summary := va.summary(workers)
	listener.Summary(summary)
	return summary, err
}

func (va *VersusArena) summary(workers int) VersusSummaryInfo {
	info := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Forfeits:         va.Forfeits(),
		Workers:          workers,
	}
	if va.Player1 != nil {
		info.P1Name = va.Player1().Name()
	}
	if va.Player2 != nil {
		info.P2Name = va.Player2().Name()
	}
	return info
}

// Plays games [first, first+nGames) of the series
func (va *VersusArena) worker(ctx context.Context, id, first, nGames int, listener ListenerLike) error {
	referee := NewReferee(va.M, va.N, va.K, va.Timeout).WithLogger(va.logger.With().Int("worker", id).Logger())
	referee.StrictTimeout = va.StrictTimeout

	for i := 0; i < nGames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		p1, p2 := va.Player1(), va.Player2()
		p1First := (first+i)%2 == 0
		info := VersusWorkerInfo{
			WorkerID:      id,
			NGames:        nGames,
			FinishedGames: i,
			M:             va.M,
			N:             va.N,
			P1Name:        p1.Name(),
			P2Name:        p2.Name(),
			P1First:       p1First,
		}
		listener.OnGameStart(info)

		firstPlayer, secondPlayer := p1, p2
		if !p1First {
			firstPlayer, secondPlayer = p2, p1
		}

		outcome, err := referee.Play(ctx, firstPlayer, secondPlayer, func(board *mnk.Board) {
			moves := board.MarkedCells()
			info.Moves = make([]mnk.Cell, len(moves))
			for j := range moves {
				info.Moves[j] = moves[j].Cell
			}
			info.GameMoveNum = len(moves)
			info.Status = board.Status()
			listener.OnMoveMade(info)
		})
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				va.logger.Error().Err(err).Int("worker", id).Msg("game could not be played")
			}
			return err
		}

		if outcome.Forfeit != mnk.Empty {
			va.forfeits.Add(1)
		}
		info.Result = va.record(outcome, p1First)
		info.Moves = outcome.Moves
		info.GameMoveNum = len(outcome.Moves)
		info.Status = outcome.Status
		info.FinishedGames = i + 1
		listener.OnFinishedGame(info)
	}

	listener.OnFinishedWork(VersusWorkerInfo{
		WorkerID:      id,
		NGames:        nGames,
		FinishedGames: nGames,
		M:             va.M,
		N:             va.N,
	})
	return nil
}

func (info VersusSummaryInfo) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(info)
	return builder.String()
}
