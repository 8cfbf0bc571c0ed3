package mcts

type SearchLine[A ActionLike] struct {
	BestAction A
	Moves      []A
	Eval       float64
}

type ListenerTreeStats[A ActionLike] struct {
	Maxdepth   int
	Iterations int
	Size       int
	Line       SearchLine[A]
}

// Convert the current tree state to a 'ListenerTreeStats' struct
func toListenerStats[A ActionLike, P PlayerLike, G GameLike[A, P, G]](tree *MCTS[A, P, G]) ListenerTreeStats[A] {
	stats := ListenerTreeStats[A]{
		Maxdepth:   tree.MaxDepth(),
		Iterations: tree.Iterations(),
		Size:       tree.Size(),
	}

	if best := tree.BestChild(tree.root); best != nil {
		stats.Line = SearchLine[A]{
			BestAction: best.Action,
			Moves:      tree.Pv(),
			Eval:       best.Value(tree.player),
		}
	}

	return stats
}

func (mcts *MCTS[A, P, G]) invokeListener(f ListenerFunc[A]) {
	if f != nil {
		f(toListenerStats(mcts))
	}
}

// Listener function callback, receives current tree statistics, like
// max depth of the tree, number of iterations so far, and the main line
type ListenerFunc[A ActionLike] func(ListenerTreeStats[A])

type StatsListener[A ActionLike] struct {
	// called when 'max depth' increases
	onDepth ListenerFunc[A]

	// called every N full iterations
	onCycle ListenerFunc[A]
	nCycles int // call 'onCycle' every N iterations

	// called once when Search returns
	onStop ListenerFunc[A]
}

func NewStatsListener[A ActionLike]() StatsListener[A] {
	return StatsListener[A]{nCycles: 1}
}

// Attach new on max depth change callback
func (listener *StatsListener[A]) OnDepth(onDepth ListenerFunc[A]) *StatsListener[A] {
	listener.onDepth = onDepth
	return listener
}

// Attach new on iteration callback, this will slow down the search
// because of the pv evaluation, so use it only for debugging
func (listener *StatsListener[A]) OnCycle(onCycle ListenerFunc[A]) *StatsListener[A] {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener[A]) SetCycleInterval(n int) *StatsListener[A] {
	if n < 1 {
		n = 1
	}
	listener.nCycles = n
	return listener
}

// Attach 'on search end' callback, called once per Search call
func (listener *StatsListener[A]) OnStop(onStop ListenerFunc[A]) *StatsListener[A] {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener[A]) Reset() *StatsListener[A] {
	return listener.OnCycle(nil).OnDepth(nil).OnStop(nil)
}
