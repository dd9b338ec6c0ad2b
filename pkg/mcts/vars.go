package mcts

// Number of visits added to every node on the path, on each backpropagation.
// The rewards are fractions over this denominator, a win adds RewardWin == VisitWeight.
const VisitWeight int32 = 2

// Exploration parameter used in UCB1 formula, higher values increase exploration
// while lower values increase exploitation. Theoretical perfect value is sqrt(2), but it has to be tuned for each problem.
// Default is 0.75
var ExplorationParam float64 = 0.75
