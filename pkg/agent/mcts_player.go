package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/IlikeChooros/mnk-mcts/pkg/mcts"
	"github.com/IlikeChooros/mnk-mcts/pkg/mnk"
)

// Share of the per-move timeout spent on searching
const SearchBudget = 0.7

// Monte Carlo tree search agent. Keeps its own board in sync with the
// harness history and reuses the subtree of the moves actually played.
type MCTSPlayer struct {
	name          string
	ctx           context.Context
	logger        zerolog.Logger
	limits        *mcts.Limits
	listener      *mcts.StatsListener[mnk.Cell]
	exploration   float64
	immediateWins bool

	board   *mnk.Board
	tree    *mcts.MCTS[mnk.Cell]
	ops     *boardOps
	me      mnk.Player
	timeout time.Duration
}

var _ Player = (*MCTSPlayer)(nil)

func NewMCTSPlayer(opts ...Option) *MCTSPlayer {
	p := &MCTSPlayer{
		name:        "mcts",
		ctx:         context.Background(),
		logger:      zerolog.Nop(),
		exploration: mcts.ExplorationParam,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *MCTSPlayer) Name() string {
	return p.name
}

func (p *MCTSPlayer) Init(rows, cols, k int, first bool, timeout time.Duration) error {
	board, err := mnk.NewBoard(rows, cols, k)
	if err != nil {
		return fmt.Errorf("init %s: %w", p.name, err)
	}

	p.me = sideOf(first)
	board.SetOwner(p.me)
	p.board = board
	p.ops = newBoardOps(board, p.me)
	p.timeout = timeout

	p.tree = mcts.NewMCTS(mcts.UCB1WithC[mnk.Cell](p.exploration))
	p.tree.Limiter.SetContext(p.ctx)
	if p.listener != nil {
		p.tree.SetListener(*p.listener)
	}

	p.logger.Debug().
		Str("player", p.name).
		Str("side", p.me.String()).
		Int("m", rows).Int("n", cols).Int("k", k).
		Dur("timeout", timeout).
		Msg("init")
	return nil
}

// Tree backing the player, valid after Init
func (p *MCTSPlayer) Tree() *mcts.MCTS[mnk.Cell] {
	return p.tree
}

// Board as the player sees it, valid after Init
func (p *MCTSPlayer) Board() *mnk.Board {
	return p.board
}

func (p *MCTSPlayer) SelectMove(free []mnk.Cell, moved []mnk.Cell) (mnk.Cell, error) {
	start := time.Now()
	if p.board == nil {
		return mnk.Cell{}, ErrNotInitialized
	}
	if len(free) == 0 {
		return mnk.Cell{}, ErrNoFreeCells
	}

	if err := p.reconcile(moved); err != nil {
		// The history itself is not playable, don't trust the board
		p.logger.Warn().Err(err).Str("player", p.name).Msg("cannot replay the game history")
		p.board.Reset()
		p.tree.Reset()
		return free[0], nil
	}
	p.board.SetTurn(p.me)

	if p.immediateWins {
		if c, ok := winningCell(p.board); ok {
			p.logger.Debug().Str("player", p.name).Stringer("move", c).Msg("immediate win")
			return p.play(c, free), nil
		}
	}

	p.tree.SetLimits(p.searchLimits(start))
	if err := p.tree.Search(p.ops); err != nil {
		p.logger.Error().Err(err).Str("player", p.name).Msg("search failed")
		if err := replay(p.board, moved); err != nil {
			p.board.Reset()
		}
		p.board.SetTurn(p.me)
		p.tree.Reset()
		return p.play(p.fallback(free), free), nil
	}

	move, ok := p.tree.RootMove()
	if !ok || !p.board.IsFree(move.Row, move.Col) {
		move = p.fallback(free)
	}

	p.logger.Debug().
		Str("player", p.name).
		Int("cycles", p.tree.Cycles()).
		Uint32("cps", p.tree.Cps()).
		Uint32("size", p.tree.Size()).
		Int("depth", p.tree.MaxDepth()).
		Stringer("move", move).
		Float64("eval", p.tree.RootScore()).
		Stringer("stop", p.tree.StopReason()).
		Dur("took", time.Since(start)).
		Msg("search finished")

	return p.play(move, free), nil
}

// Either the fixed limits, or the share of the timeout still left for this move
func (p *MCTSPlayer) searchLimits(start time.Time) *mcts.Limits {
	if p.limits != nil {
		limits := *p.limits
		return &limits
	}

	budget := time.Duration(float64(p.timeout)*SearchBudget) - time.Since(start)
	return mcts.DefaultLimits().SetMovetime(max(0, int(budget.Milliseconds())))
}

// Bring the board and the tree to the position the harness reports
func (p *MCTSPlayer) reconcile(moved []mnk.Cell) error {
	history := p.board.MarkedCells()
	if len(moved) < len(history) || !isPrefix(history, moved) {
		return p.resync(moved)
	}

	switch len(moved) - len(history) {
	case 0:
		return nil
	case 1:
		opponent := moved[len(moved)-1]
		if _, err := p.board.MarkCell(opponent); err != nil {
			return p.resync(moved)
		}
		p.board.TogglePlayer()

		if !p.tree.MakeMove(opponent) {
			if p.tree.Root.Expanded() {
				p.logger.Warn().
					Str("player", p.name).
					Stringer("move", opponent).
					Msg("opponent move not found in the tree")
			}
			p.tree.Reset()
		}
		return nil
	}
	return p.resync(moved)
}

// Rebuild the board from the harness history and drop the tree
func (p *MCTSPlayer) resync(moved []mnk.Cell) error {
	if p.board.Marked() > 0 {
		p.logger.Warn().
			Str("player", p.name).
			Int("local", p.board.Marked()).
			Int("harness", len(moved)).
			Msg("history out of sync, rebuilding the board")
	}
	p.tree.Reset()
	return replay(p.board, moved)
}

// Mark our move and promote its subtree
func (p *MCTSPlayer) play(c mnk.Cell, free []mnk.Cell) mnk.Cell {
	if !containsCell(free, c) {
		p.logger.Warn().Str("player", p.name).Stringer("move", c).Msg("move is not free, falling back")
		c = free[0]
	}

	if _, err := p.board.MarkCell(c); err != nil {
		p.tree.Reset()
		return c
	}
	p.board.TogglePlayer()

	if !p.tree.MakeMove(c) {
		p.tree.Reset()
	}
	return c
}

// The best free cell by the heuristic, used when there is no search result
func (p *MCTSPlayer) fallback(free []mnk.Cell) mnk.Cell {
	if c, ok := p.board.GreedyCell(); ok && containsCell(free, c) {
		return c
	}
	return free[0]
}

func isPrefix(prefix []mnk.Move, cells []mnk.Cell) bool {
	if len(prefix) > len(cells) {
		return false
	}
	for i, m := range prefix {
		if m.Cell != cells[i] {
			return false
		}
	}
	return true
}

// Free cell that wins the game for the player to move
func winningCell(board *mnk.Board) (mnk.Cell, bool) {
	me := board.Turn()
	for _, c := range board.FreeCells() {
		status, err := board.MarkCell(c)
		if err != nil {
			continue
		}
		_ = board.Unmark()
		if status == mnk.WinOf(me) {
			return c, true
		}
	}
	return mnk.Cell{}, false
}
