package mcts

// Other types, which didn't fit to MCTS or Node files

type MoveLike comparable

// Reward of a single playout, from the searching side's perspective
type Reward int32

const (
	RewardLoss Reward = 0
	RewardDraw Reward = 1
	RewardWin  Reward = 2
)

// Called when reordering the children of a node, the child with the highest
// score is the one chosen in the selection phase
type SelectionPolicy[T MoveLike] func(child, parent *NodeBase[T]) float64
