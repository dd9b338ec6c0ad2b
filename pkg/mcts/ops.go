package mcts

// Game state the tree is searched on. The tree replays the moves
// from the root and expects every Traverse to be undone with BackTraverse.
type GameOperations[T MoveLike] interface {
	// Make a move on the internal position, reports whether it ended the game
	Traverse(T) (bool, error)
	// Go back up 1 time in the game tree (undo previous move, which was played in traverse)
	BackTraverse() error
	// Moves available in the current position, used to expand a leaf
	Moves() []T
	// Play the game from current position until it ends, restore the position,
	// and return the result for the searching side.
	// If the position is already terminal, just evaluate it.
	Rollout() (Reward, error)
}
