package agent

import (
	"github.com/IlikeChooros/mnk-mcts/pkg/mcts"
	"github.com/IlikeChooros/mnk-mcts/pkg/mnk"
)

// Drives the search on the agent's own board. Every traversed cell is marked
// for the player to move, and the turn passes to the other side.
type boardOps struct {
	board *mnk.Board
	// searching side, rewards are given from its perspective
	me mnk.Player
}

var _ mcts.GameOperations[mnk.Cell] = (*boardOps)(nil)

func newBoardOps(board *mnk.Board, me mnk.Player) *boardOps {
	return &boardOps{board: board, me: me}
}

func (o *boardOps) Traverse(c mnk.Cell) (bool, error) {
	status, err := o.board.MarkCell(c)
	if err != nil {
		return false, err
	}
	o.board.TogglePlayer()
	return status.Terminal(), nil
}

func (o *boardOps) BackTraverse() error {
	return o.board.Unmark()
}

func (o *boardOps) Moves() []mnk.Cell {
	if o.board.Status().Terminal() {
		return nil
	}
	return o.board.FreeCells()
}

// Greedy playout: both sides keep marking the cell with the best combined
// heuristic until the game ends, then the board is restored
func (o *boardOps) Rollout() (mcts.Reward, error) {
	played := 0
	for !o.board.Status().Terminal() {
		c, ok := o.board.GreedyCell()
		if !ok {
			break
		}
		if _, err := o.board.MarkCell(c); err != nil {
			return mcts.RewardLoss, err
		}
		o.board.TogglePlayer()
		played++
	}

	result := o.result(o.board.Status())

	for ; played > 0; played-- {
		if err := o.board.Unmark(); err != nil {
			return mcts.RewardLoss, err
		}
	}
	return result, nil
}

func (o *boardOps) result(status mnk.Status) mcts.Reward {
	switch status.Winner() {
	case o.me:
		return mcts.RewardWin
	case mnk.Empty:
		return mcts.RewardDraw
	}
	return mcts.RewardLoss
}
