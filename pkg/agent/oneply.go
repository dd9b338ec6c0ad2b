package agent

import (
	"fmt"
	"time"

	"github.com/IlikeChooros/mnk-mcts/pkg/mnk"
)

// Baseline player looking one move ahead: win if possible, otherwise block
// the opponent's win, otherwise take the cell with the best heuristic.
type OnePlyPlayer struct {
	name  string
	board *mnk.Board
	me    mnk.Player
}

var _ Player = (*OnePlyPlayer)(nil)

func NewOnePlyPlayer(name string) *OnePlyPlayer {
	if name == "" {
		name = "oneply"
	}
	return &OnePlyPlayer{name: name}
}

func (p *OnePlyPlayer) Name() string {
	return p.name
}

func (p *OnePlyPlayer) Init(rows, cols, k int, first bool, _ time.Duration) error {
	board, err := mnk.NewBoard(rows, cols, k)
	if err != nil {
		return fmt.Errorf("init %s: %w", p.name, err)
	}
	p.me = sideOf(first)
	board.SetOwner(p.me)
	p.board = board
	return nil
}

func (p *OnePlyPlayer) SelectMove(free []mnk.Cell, moved []mnk.Cell) (mnk.Cell, error) {
	if p.board == nil {
		return mnk.Cell{}, ErrNotInitialized
	}
	if len(free) == 0 {
		return mnk.Cell{}, ErrNoFreeCells
	}
	if err := replay(p.board, moved); err != nil {
		return free[0], nil
	}

	p.board.SetTurn(p.me)
	if c, ok := winningCell(p.board); ok {
		return c, nil
	}

	p.board.SetTurn(p.me.Opponent())
	c, ok := winningCell(p.board)
	p.board.SetTurn(p.me)
	if ok && containsCell(free, c) {
		return c, nil
	}

	best, bestScore := free[0], -1
	for _, c := range free {
		score, ok := p.score(c)
		if !ok {
			continue
		}

		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}

// Combined heuristic of the free cell, plus the K-1 run bonus it would get once marked
func (p *OnePlyPlayer) score(c mnk.Cell) (int, bool) {
	if !p.board.IsFree(c.Row, c.Col) {
		return 0, false
	}
	h := p.board.CombinedHeuristic(c.Row, c.Col)

	if _, err := p.board.MarkCell(c); err != nil {
		return 0, false
	}
	h += p.board.AlmostKBonus(c.Row, c.Col)
	_ = p.board.Unmark()
	return h, true
}
