package mcts

import (
	"fmt"
)

type TreeStats struct {
	maxdepth int
	cps      uint32
	cycles   uint32
}

type MCTS[T MoveLike] struct {
	TreeStats
	listener         *StatsListener[T]
	Limiter          LimiterLike
	selection_policy SelectionPolicy[T]
	Root             *NodeBase[T]
	size             uint32
}

// Create new tree, with an unexpanded root
func NewMCTS[T MoveLike](selectionPolicy SelectionPolicy[T]) *MCTS[T] {
	if selectionPolicy == nil {
		selectionPolicy = UCB1[T]
	}

	listener := NewStatsListener[T]()
	return &MCTS[T]{
		listener:         &listener,
		Limiter:          LimiterLike(NewLimiter()),
		selection_policy: selectionPolicy,
		Root:             newRootNode[T](),
		size:             1,
	}
}

func (mcts *MCTS[T]) StatsListener() *StatsListener[T] {
	return mcts.listener
}

func (mcts *MCTS[T]) SetListener(listener StatsListener[T]) {
	*mcts.listener = listener
}

// Stop the search after the current iteration
func (mcts *MCTS[T]) Stop() {
	mcts.Limiter.SetStop(true)
}

// Maxiumum depth reach during the search, note that usually MaxDepth != len(pv)
func (mcts *MCTS[T]) MaxDepth() int {
	return mcts.maxdepth
}

// Total number of iterations ran during the last search
func (mcts *MCTS[T]) Cycles() int {
	return int(mcts.cycles)
}

// Get cycles per second statistic
func (mcts *MCTS[T]) Cps() uint32 {
	return mcts.cps
}

// Get the reason why the search was stopped, valid after search ends
func (mcts *MCTS[T]) StopReason() StopReason {
	return mcts.Limiter.StopReason()
}

func (mcts *MCTS[T]) SetLimits(limits *Limits) {
	mcts.Limiter.SetLimits(limits)
}

func (mcts *MCTS[T]) Limits() *Limits {
	return mcts.Limiter.Limits()
}

func (mcts *MCTS[T]) String() string {
	return fmt.Sprintf("MCTS={Size=%d, Stats:{maxdepth=%d, cps=%d, cycles=%d}, Root=%v}",
		mcts.Size(), mcts.MaxDepth(), mcts.Cps(), mcts.Cycles(), mcts.Root)
}

// Helper function to count tree nodes
func countTreeNodes[T MoveLike](node *NodeBase[T]) int {
	nodes := 1
	for _, child := range node.children {
		nodes += countTreeNodes(child)
	}
	return nodes
}

// Get the size of the tree (by counting)
func (mcts *MCTS[T]) Count() int {
	return countTreeNodes(mcts.Root)
}

// Get the size of the tree
func (mcts *MCTS[T]) Size() uint32 {
	return mcts.size
}

// Tries to make given 'move' a new root, keeping its subtree.
// Returns false (and leaves the tree untouched) if the root has no such child.
func (mcts *MCTS[T]) MakeMove(move T) bool {
	newRoot := mcts.Root.ChildByMove(move)
	if newRoot == nil {
		return false
	}

	oldRoot := mcts.Root
	mcts.Root = newRoot
	mcts.size = uint32(countTreeNodes(newRoot))
	mcts.maxdepth = max(0, mcts.maxdepth-1)

	// Detach the new root from its parent
	newRoot.Parent = nil

	// Clear the children of the old root, to make them available for GC
	oldRoot.dropChildren()
	return true
}

// Discard the whole tree and start with a fresh root
func (mcts *MCTS[T]) Reset() {
	mcts.Root = newRootNode[T]()
	mcts.size = 1
	mcts.maxdepth = 0
}

// 'the best move' in the position, the most visited child of the root
func (mcts *MCTS[T]) RootMove() (T, bool) {
	var move T
	if best := mcts.Root.MostVisited(); best != nil {
		return best.Move, true
	}
	return move, false
}

// Average reward of the best move, NaN-free: 0 if nothing was searched
func (mcts *MCTS[T]) RootScore() float64 {
	if best := mcts.Root.MostVisited(); best != nil {
		return best.AvgQ()
	}
	return 0
}

// Get the principal variation (ie. the most visited sequence of moves)
func (mcts *MCTS[T]) Pv() []T {
	pv := make([]T, 0, mcts.MaxDepth())
	node := mcts.Root.MostVisited()
	for node != nil {
		pv = append(pv, node.Move)
		if node.Terminal() {
			break
		}
		node = node.MostVisited()
	}
	return pv
}
