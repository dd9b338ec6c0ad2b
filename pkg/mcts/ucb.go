package mcts

import "math"

// UCB 1 : exploitation + C * sqrt(ln(parent_visits)/visits)
//
// Rewards are stored from the searching side's perspective, so for the
// opponent's moves the exploitation term is flipped. Unvisited children
// score +Inf and are always tried first.
func UCB1[T MoveLike](child, parent *NodeBase[T]) float64 {
	return ucb1(child, parent, ExplorationParam)
}

// UCB1 with its own exploration constant instead of ExplorationParam
func UCB1WithC[T MoveLike](c float64) SelectionPolicy[T] {
	c = max(0.0, c)
	return func(child, parent *NodeBase[T]) float64 {
		return ucb1(child, parent, c)
	}
}

func ucb1[T MoveLike](child, parent *NodeBase[T], c float64) float64 {
	visits := child.N()
	if visits == 0 {
		return math.Inf(1)
	}

	q := child.AvgQ()
	if !child.Own() {
		q = 1 - q
	}

	return q + c*math.Sqrt(math.Log(float64(parent.N()))/float64(visits))
}
