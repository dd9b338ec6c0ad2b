package mcts

import (
	"fmt"
)

// This function only sets the limits, resets the counters, and the stop flag
// doesn't actually start the search
func (mcts *MCTS[T]) setupSearch() {
	mcts.Limiter.Reset()
	mcts.cps = 0
	mcts.cycles = 0
	mcts.maxdepth = 0
}

// Actual search function implementation, simply calls:
//
// 1. selection - to choose the most promising node, expanding it if it was visited before
//
// 2. rollout - to simulate the game from that node, and get the result of a playout
//
// 3. backpropagate - to increment counters up to the root
//
// Until runs out of the allocated time, nodes or cycles. 'ops' must be set to
// the root position and will be restored to it, unless an error is returned.
func (mcts *MCTS[T]) Search(ops GameOperations[T]) error {
	mcts.setupSearch()

	if mcts.Root.Terminal() {
		mcts.Limiter.EvaluateStopReason(mcts.size, mcts.cycles)
		mcts.listener.invokeStop(mcts)
		return nil
	}

	for mcts.Limiter.Ok(mcts.size, mcts.cycles) {
		if err := mcts.iterate(ops); err != nil {
			mcts.Limiter.EvaluateStopReason(mcts.size, mcts.cycles)
			return fmt.Errorf("%w: %w", ErrSearchAborted, err)
		}

		// Increment cycle count and store the cps
		mcts.cycles++
		mcts.cps = uint32(uint64(mcts.cycles) * 1000 / uint64(mcts.Limiter.Elapsed()))
		mcts.listener.invokeCycle(mcts)
	}

	mcts.Limiter.EvaluateStopReason(mcts.size, mcts.cycles)
	mcts.listener.invokeStop(mcts)
	return nil
}

// Single iteration of the search
func (mcts *MCTS[T]) iterate(ops GameOperations[T]) error {
	node, err := mcts.selection(ops)
	if err != nil {
		return err
	}

	result, err := ops.Rollout()
	if err != nil {
		return err
	}

	return mcts.backpropagate(ops, node, result)
}

// Walk down the tree by the selection policy, until a leaf or a terminal node is found.
// A leaf that was already visited (or the root) gets expanded, if the limiter allows it.
func (mcts *MCTS[T]) selection(ops GameOperations[T]) (*NodeBase[T], error) {
	node := mcts.Root
	depth := 0

	for node.Expanded() && !node.Terminal() {
		child := node.BestChild()
		if child == nil {
			return nil, ErrNoMoves
		}
		if err := mcts.traverse(ops, child); err != nil {
			return nil, err
		}
		node = child
		depth++
	}

	if !node.Terminal() && (node == mcts.Root || node.N() > 0) && mcts.Limiter.Expand() {
		moves := ops.Moves()
		if len(moves) == 0 {
			return nil, fmt.Errorf("%w: at %v", ErrNoMoves, node.Move)
		}
		mcts.size += node.CreateChildren(moves)

		child := node.BestChild()
		if err := mcts.traverse(ops, child); err != nil {
			return nil, err
		}
		node = child
		depth++
	}

	mcts.maxdepth = max(mcts.maxdepth, depth)
	return node, nil
}

func (mcts *MCTS[T]) traverse(ops GameOperations[T], node *NodeBase[T]) error {
	terminal, err := ops.Traverse(node.Move)
	if err != nil {
		return err
	}
	if terminal {
		node.SetTerminal()
	}
	return nil
}

// Add the result to every node on the path up to the root, keeping the
// children ordering of each parent, and undo the moves made in the selection
func (mcts *MCTS[T]) backpropagate(ops GameOperations[T], node *NodeBase[T], result Reward) error {
	var child *NodeBase[T]
	for n := node; n != nil; n = n.Parent {
		n.Add(result)
		if child != nil {
			n.Reorder(child, mcts.selection_policy)
		}
		if n.Parent != nil {
			if err := ops.BackTraverse(); err != nil {
				return err
			}
		}
		child = n
	}
	return nil
}
