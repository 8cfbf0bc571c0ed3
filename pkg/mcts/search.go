package mcts

import "math"

// Search runs the four-phase MCTS loop exactly 'iterations' times,
// synchronously:
//
// 1. selection - walk down the tree by UCT score to the most promising leaf
//
// 2. expansion - grow the tree by one child from the leaf's untried actions
//
// 3. simulation - random playout from the new node to a terminal outcome
//
// 4. backpropagation - credit the outcome to every node up to the root
//
// There is no early termination, a caller wanting a time budget must size
// 'iterations' accordingly or cancel around the call.
func (mcts *MCTS[A, P, G]) Search(iterations int) {
	for range iterations {
		node, depth := mcts.selectLeaf()

		if child := mcts.expand(node); child != nil {
			node = child
			depth++
			mcts.size++
		}

		if depth > mcts.maxdepth {
			mcts.maxdepth = depth
			mcts.invokeListener(mcts.listener.onDepth)
		}

		mcts.backpropagate(node, mcts.simulate(node))

		mcts.iterations++
		if mcts.listener.onCycle != nil && mcts.iterations%max(1, mcts.listener.nCycles) == 0 {
			mcts.listener.onCycle(toListenerStats(mcts))
		}
	}

	mcts.invokeListener(mcts.listener.onStop)
}

// Walk down from the root picking the child with the highest UCT score
// until reaching a leaf (terminal, childless, or not fully expanded).
// Returns the leaf and its depth.
//
// A node with untried actions left stops the descent even when it already
// has children, expansion below consumes the untried set before selection
// ever descends through the node.
func (mcts *MCTS[A, P, G]) selectLeaf() (*Node[A, P, G], int) {
	node := mcts.root
	depth := 0

	for !node.leaf() {
		var best *Node[A, P, G]
		bestScore := math.Inf(-1)
		lnParentVisits := math.Log(float64(node.Played()))

		for _, child := range node.Children {
			// UCT: exploitation + C * sqrt(ln(parent visits)/child visits).
			// Every child on this path has been simulated at least once,
			// so child.Played() is never zero here.
			score := child.Value(mcts.player) +
				mcts.exploration*math.Sqrt(lnParentVisits/float64(child.Played()))

			if score > bestScore {
				bestScore = score
				best = child
			}
		}

		node = best
		depth++
	}

	return node, depth
}

// Consume one untried action of the leaf at random and append the
// resulting state as a new child. Returns nil when the leaf has nothing
// left to expand (fully expanded or terminal), the caller then simulates
// from the leaf itself.
func (mcts *MCTS[A, P, G]) expand(leaf *Node[A, P, G]) *Node[A, P, G] {
	n := len(leaf.untried)
	if n == 0 {
		return nil
	}

	// Single action needs no randomness
	index := 0
	if n > 1 {
		index = mcts.rand.Intn(n)
	}

	action := leaf.untried[index]
	leaf.untried[index] = leaf.untried[n-1]
	leaf.untried = leaf.untried[:n-1]

	game := leaf.game.Clone()
	mover := leaf.game.Turn()
	game.Play(action)

	child := newNode(leaf, game, action, mover)
	leaf.Children = append(leaf.Children, child)
	return child
}

// Play uniformly random actions on a throwaway copy of the node's state
// until the game ends, returns the outcome for the searching player
func (mcts *MCTS[A, P, G]) simulate(node *Node[A, P, G]) Outcome {
	game := node.game.Clone()

	for {
		if outcome := game.Outcome(mcts.player); outcome != Unfinished {
			return outcome
		}

		actions := game.LegalActions()
		n := len(actions)
		if n == 0 {
			// The contract promises a terminal outcome whenever no
			// actions remain, anything else cannot make progress
			panic("mcts: no legal actions in a non-terminal state")
		}

		index := 0
		if n > 1 {
			index = mcts.rand.Intn(n)
		}
		game.Play(actions[index])
	}
}

// Credit the outcome to every node from the simulated one up to and
// including the root. The outcome is applied unmodified at every level,
// Node.Value reinterprets it per mover.
func (mcts *MCTS[A, P, G]) backpropagate(node *Node[A, P, G], outcome Outcome) {
	for ; node != nil; node = node.Parent {
		node.addOutcome(outcome)
	}
}
