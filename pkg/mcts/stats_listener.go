package mcts

type ListenerTreeStats[T MoveLike] struct {
	Maxdepth   int
	Cycles     int
	TimeMs     int
	Cps        uint32
	Size       uint32
	BestMove   T
	Visits     int32
	Eval       float64
	Pv         []T
	StopReason StopReason
}

// Convert tree statistics to 'ListenerTreeStats' struct
func toListenerStats[T MoveLike](tree *MCTS[T]) ListenerTreeStats[T] {
	stats := ListenerTreeStats[T]{
		Maxdepth:   tree.MaxDepth(),
		Cycles:     tree.Cycles(),
		TimeMs:     int(tree.Limiter.Elapsed()),
		Cps:        tree.Cps(),
		Size:       tree.Size(),
		Pv:         tree.Pv(),
		StopReason: tree.Limiter.StopReason(),
	}

	if best := tree.Root.MostVisited(); best != nil {
		stats.BestMove = best.Move
		stats.Visits = best.N()
		stats.Eval = best.AvgQ()
	}
	return stats
}

// Listener function callback, will recieve current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc[T MoveLike] func(ListenerTreeStats[T])

type StatsListener[T MoveLike] struct {
	// called every N full iterations
	onCycle ListenerFunc[T]
	nCycles int // call 'onCycle' every N cycles

	// called when the search stops (either by limiter or 'stop' signal)
	onStop ListenerFunc[T]
}

func NewStatsListener[T MoveLike]() StatsListener[T] {
	return StatsListener[T]{nCycles: 1}
}

// Attach new on iteration increase callback, this will slow down the search,
// because of pv evaluation, so use it only for debugging
func (listener *StatsListener[T]) OnCycle(onCycle ListenerFunc[T]) *StatsListener[T] {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener[T]) SetCycleInterval(n int) *StatsListener[T] {
	listener.nCycles = max(n, 1)
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener[T]) OnStop(onStop ListenerFunc[T]) *StatsListener[T] {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener[T]) invokeCycle(tree *MCTS[T]) {
	if listener.onCycle != nil && tree.Cycles()%max(listener.nCycles, 1) == 0 {
		listener.onCycle(toListenerStats(tree))
	}
}

func (listener *StatsListener[T]) invokeStop(tree *MCTS[T]) {
	if listener.onStop != nil {
		listener.onStop(toListenerStats(tree))
	}
}
