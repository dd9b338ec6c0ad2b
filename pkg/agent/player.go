// Package agent implements the players a match harness talks to: the MCTS
// agent and a one-ply heuristic baseline.
package agent

import (
	"errors"
	"time"

	"github.com/IlikeChooros/mnk-mcts/pkg/mnk"
)

var (
	ErrNotInitialized = errors.New("player is not initialized")
	ErrNoFreeCells    = errors.New("no free cells to choose from")
)

// Harness contract. Init is called once per game, then SelectMove every time
// it's the player's turn, with the free cells and all moves played so far.
type Player interface {
	Init(rows, cols, k int, first bool, timeout time.Duration) error
	SelectMove(free []mnk.Cell, moved []mnk.Cell) (mnk.Cell, error)
	Name() string
}

// Builds a fresh player, used when every game (or worker) needs its own instance
type Factory func() Player

func sideOf(first bool) mnk.Player {
	if first {
		return mnk.First
	}
	return mnk.Second
}

// Replays the harness history on a cleared board, alternating the players
func replay(board *mnk.Board, moved []mnk.Cell) error {
	board.Reset()
	for _, c := range moved {
		if _, err := board.MarkCell(c); err != nil {
			return err
		}
		board.TogglePlayer()
	}
	return nil
}

func containsCell(cells []mnk.Cell, c mnk.Cell) bool {
	for _, other := range cells {
		if other == c {
			return true
		}
	}
	return false
}
