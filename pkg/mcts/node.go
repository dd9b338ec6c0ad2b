package mcts

import (
	"container/heap"
	"fmt"
	"math"
)

const (
	ExpandedMask uint32 = 2
	TerminalMask uint32 = 4
	// Node's move was played by the searching side
	OwnMask uint32 = 8
)

type NodeBase[T MoveLike] struct {
	NodeStats
	Move T
	// Non-owning link, only used to walk up the tree
	Parent   *NodeBase[T]
	Flags    uint32
	children childHeap[T]
	// position in parent's children heap
	index int
	score float64
}

func newRootNode[T MoveLike]() *NodeBase[T] {
	return &NodeBase[T]{}
}

func NewBaseNode[T MoveLike](parent *NodeBase[T], move T) *NodeBase[T] {
	node := &NodeBase[T]{
		Move:   move,
		Parent: parent,
		score:  math.Inf(1),
	}
	if parent != nil && !parent.Own() {
		node.Flags |= OwnMask
	}
	return node
}

// Reads the game Flags, and return wheter the node is terminal
func (node *NodeBase[T]) Terminal() bool {
	return node.Flags&TerminalMask == TerminalMask
}

func (node *NodeBase[T]) SetTerminal() {
	node.Flags |= TerminalMask
}

// Same as asking if the node has chidlren
func (node *NodeBase[T]) Expanded() bool {
	return node.Flags&ExpandedMask == ExpandedMask
}

func (node *NodeBase[T]) Own() bool {
	return node.Flags&OwnMask == OwnMask
}

// Turns the leaf into an internal node, with one child per move.
// Must be called at most once per node.
func (node *NodeBase[T]) CreateChildren(moves []T) uint32 {
	if node.Expanded() {
		panic(fmt.Sprintf("[MCTS] CreateChildren: node %v is already expanded", node.Move))
	}

	node.children = make(childHeap[T], len(moves))
	for i, m := range moves {
		child := NewBaseNode(node, m)
		child.index = i
		node.children[i] = child
	}
	// every child is unvisited, so the heap property already holds
	node.Flags |= ExpandedMask
	return uint32(len(moves))
}

// Child with the highest selection score, nil if there are no children
func (node *NodeBase[T]) BestChild() *NodeBase[T] {
	if len(node.children) == 0 {
		return nil
	}
	return node.children[0]
}

// Recalculate the score of given child and restore its position in the ordering
func (node *NodeBase[T]) Reorder(child *NodeBase[T], policy SelectionPolicy[T]) {
	if child.Parent != node {
		panic("[MCTS] Reorder: not a child of this node")
	}
	child.score = policy(child, node)
	heap.Fix(&node.children, child.index)
}

// Child with the highest visit count, nil if none of them was visited
func (node *NodeBase[T]) MostVisited() *NodeBase[T] {
	var best *NodeBase[T]
	maxVisits := int32(0)
	for _, child := range node.children {
		if v := child.N(); v > maxVisits {
			maxVisits = v
			best = child
		}
	}
	return best
}

func (node *NodeBase[T]) ChildByMove(move T) *NodeBase[T] {
	for _, child := range node.children {
		if child.Move == move {
			return child
		}
	}
	return nil
}

// Snapshot of the children, in no particular order
func (node *NodeBase[T]) Children() []*NodeBase[T] {
	return append([]*NodeBase[T](nil), node.children...)
}

func (node *NodeBase[T]) Len() int {
	return len(node.children)
}

// Detach the children, making them available for GC
func (node *NodeBase[T]) dropChildren() {
	node.children = nil
}

func (node *NodeBase[T]) String() string {
	return fmt.Sprintf("{move=%v n=%d q=%d own=%v terminal=%v children=%d}",
		node.Move, node.N(), node.Q(), node.Own(), node.Terminal(), len(node.children))
}

// Max-heap of children by selection score
type childHeap[T MoveLike] []*NodeBase[T]

func (h childHeap[T]) Len() int { return len(h) }

func (h childHeap[T]) Less(i, j int) bool { return h[i].score > h[j].score }

func (h childHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *childHeap[T]) Push(x any) {
	node := x.(*NodeBase[T])
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *childHeap[T]) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return node
}
