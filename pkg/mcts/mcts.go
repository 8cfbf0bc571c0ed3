package mcts

import (
	"fmt"
	"math"
	"math/rand"
)

type TreeStats struct {
	maxdepth   int
	iterations int
	size       int
}

// MCTS is a single search session: one tree, rooted at the initial game
// state, owned exclusively by this instance. The engine is single-threaded,
// Search blocks until all iterations are done and nothing is shared
// between instances.
type MCTS[A ActionLike, P PlayerLike, G GameLike[A, P, G]] struct {
	TreeStats
	listener    *StatsListener[A]
	root        *Node[A, P, G]
	player      P
	rand        *rand.Rand
	exploration float64
}

// Create a new search tree from the initial game state. The searching
// player is whoever is to move in that state. The engine takes ownership
// of the state, pass a Clone if the caller still needs it.
func New[A ActionLike, P PlayerLike, G GameLike[A, P, G]](game G) *MCTS[A, P, G] {
	var noAction A
	player := game.Turn()
	return &MCTS[A, P, G]{
		TreeStats:   TreeStats{size: 1},
		listener:    &StatsListener[A]{nCycles: 1},
		root:        newNode(nil, game, noAction, player),
		player:      player,
		rand:        newDefaultRand(),
		exploration: ExplorationParam,
	}
}

// Set the exploration constant of the UCT formula for this tree,
// negative values are clamped to 0
func (mcts *MCTS[A, P, G]) SetExplorationParam(c float64) {
	mcts.exploration = max(0.0, c)
}

// Replace the random source used for expansion and rollouts, this is
// the hook for deterministic, seeded test runs
func (mcts *MCTS[A, P, G]) SetRand(r *rand.Rand) {
	if r != nil {
		mcts.rand = r
	}
}

func (mcts *MCTS[A, P, G]) Root() *Node[A, P, G] {
	return mcts.root
}

// The player the whole search optimizes for
func (mcts *MCTS[A, P, G]) Player() P {
	return mcts.player
}

// Maximum depth reached during the search, note that usually MaxDepth != len(pv)
func (mcts *MCTS[A, P, G]) MaxDepth() int {
	return mcts.maxdepth
}

// Total number of search iterations ran so far
func (mcts *MCTS[A, P, G]) Iterations() int {
	return mcts.iterations
}

// Get the size of the tree, exactly one node is added per iteration
func (mcts *MCTS[A, P, G]) Size() int {
	return mcts.size
}

// Helper function to count tree nodes
func countTreeNodes[A ActionLike, P PlayerLike, G GameLike[A, P, G]](node *Node[A, P, G]) int {
	nodes := 1
	for _, child := range node.Children {
		nodes += countTreeNodes(child)
	}
	return nodes
}

// Get the size of the tree (by counting)
func (mcts *MCTS[A, P, G]) Count() int {
	return countTreeNodes(mcts.root)
}

func (mcts *MCTS[A, P, G]) StatsListener() *StatsListener[A] {
	return mcts.listener
}

func (mcts *MCTS[A, P, G]) SetListener(listener StatsListener[A]) {
	*mcts.listener = listener
}

// BestAction returns the root action with the highest exploitation value
// for the searching player, along with that value in [0, 1]. No
// exploration term here, this is a final decision, not a tree walk.
//
// Panics if the root has no expanded children, meaning Search was never
// called or the game had zero legal actions at the root, there is
// nothing to recommend in either case.
func (mcts *MCTS[A, P, G]) BestAction() (A, float64) {
	best := mcts.BestChild(mcts.root)
	if best == nil {
		panic("mcts: BestAction on a root with no expanded children")
	}
	return best.Action, best.Value(mcts.player)
}

// Return the child with the best exploitation value for the searching
// player, nil if the node has no visited children
func (mcts *MCTS[A, P, G]) BestChild(node *Node[A, P, G]) *Node[A, P, G] {
	var best *Node[A, P, G]
	bestScore := math.Inf(-1)

	for _, child := range node.Children {
		if child.Played() == 0 {
			continue
		}
		if score := child.Value(mcts.player); score > bestScore {
			bestScore = score
			best = child
		}
	}

	return best
}

// Get the principal variation, i.e. the sequence of best-value actions
// from the root
func (mcts *MCTS[A, P, G]) Pv() []A {
	pv := make([]A, 0, mcts.maxdepth)
	for node := mcts.BestChild(mcts.root); node != nil; node = mcts.BestChild(node) {
		pv = append(pv, node.Action)
	}
	return pv
}

func (mcts *MCTS[A, P, G]) String() string {
	return fmt.Sprintf("MCTS{Size=%d, Stats:{maxdepth=%d, iterations=%d}, Root=%v, Root.Children=%v}",
		mcts.Size(), mcts.MaxDepth(), mcts.Iterations(), mcts.root, mcts.root.Children)
}
