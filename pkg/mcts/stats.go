package mcts

// Visit and reward counters of the node.
// The search is single threaded, so there is no need for atomics here.
type NodeStats struct {
	// Sum of all rewards, see Reward
	q int32
	// Visit counter, incremented by VisitWeight
	n int32
}

// Get number of visits to this node
func (stats *NodeStats) N() int32 {
	return stats.n
}

// Cumulated rewards for this node
func (stats *NodeStats) Q() int32 {
	return stats.q
}

// Average reward of this node in [0, 1] range, 0 if the node wasn't visited
func (stats *NodeStats) AvgQ() float64 {
	if stats.n == 0 {
		return 0
	}
	return float64(stats.q) / float64(stats.n)
}

// Add one playout result
func (stats *NodeStats) Add(result Reward) {
	stats.q += int32(result)
	stats.n += VisitWeight
}

// Sets visits and rewards of this node to specified value
func (stats *NodeStats) Set(visits, rewards int32) {
	stats.n = visits
	stats.q = rewards
}
