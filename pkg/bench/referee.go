package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/IlikeChooros/mnk-mcts/pkg/agent"
	"github.com/IlikeChooros/mnk-mcts/pkg/mnk"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrTimeout     = errors.New("move took longer than the timeout")
)

// Plays single games between two agents, enforcing the rules
type Referee struct {
	M, N, K int
	Timeout time.Duration
	// forfeit the game of a player exceeding the timeout, otherwise only log it
	StrictTimeout bool
	logger        zerolog.Logger
}

func NewReferee(m, n, k int, timeout time.Duration) *Referee {
	return &Referee{M: m, N: n, K: k, Timeout: timeout, logger: zerolog.Nop()}
}

func (r *Referee) WithLogger(logger zerolog.Logger) *Referee {
	r.logger = logger
	return r
}

// Play a game, 'first' moves first. onMove (if not nil) is called after every move
// with a copy of the board.
// An error is returned only if the game couldn't be played at all.
func (r *Referee) Play(ctx context.Context, first, second agent.Player, onMove func(*mnk.Board)) (GameOutcome, error) {
	board, err := mnk.NewBoard(r.M, r.N, r.K)
	if err != nil {
		return GameOutcome{}, err
	}

	players := [2]agent.Player{first, second}
	for i, p := range players {
		if err := p.Init(r.M, r.N, r.K, i == 0, r.Timeout); err != nil {
			return GameOutcome{}, fmt.Errorf("%s: %w", p.Name(), err)
		}
	}

	moved := make([]mnk.Cell, 0, r.M*r.N)
	for turn := 0; !board.Status().Terminal(); turn++ {
		if err := ctx.Err(); err != nil {
			return GameOutcome{Status: board.Status(), Moves: moved}, err
		}

		player := players[turn%2]
		side := board.Turn()

		start := time.Now()
		move, err := player.SelectMove(board.FreeCells(), append([]mnk.Cell(nil), moved...))
		took := time.Since(start)

		if err == nil && !board.IsFree(move.Row, move.Col) {
			err = fmt.Errorf("%w: %v", ErrIllegalMove, move)
		}
		if err == nil && r.Timeout > 0 && took > r.Timeout {
			err = fmt.Errorf("%w: %v > %v", ErrTimeout, took, r.Timeout)
			if !r.StrictTimeout {
				r.logger.Warn().Err(err).Str("player", player.Name()).Msg("slow move")
				err = nil
			}
		}
		if err != nil {
			r.logger.Warn().Err(err).Str("player", player.Name()).Msg("forfeit")
			return GameOutcome{
				Status:  mnk.WinOf(side.Opponent()),
				Moves:   moved,
				Forfeit: side,
				Err:     err,
			}, nil
		}

		if _, err := board.MarkCell(move); err != nil {
			return GameOutcome{Status: board.Status(), Moves: moved}, err
		}
		board.TogglePlayer()
		moved = append(moved, move)

		if onMove != nil {
			onMove(board.Clone())
		}
	}

	return GameOutcome{Status: board.Status(), Moves: moved}, nil
}
