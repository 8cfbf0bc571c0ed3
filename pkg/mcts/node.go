package mcts

import "fmt"

// A single visited game state in the search tree. The node owns its game
// state exclusively, parents own their children, the Parent pointer is a
// non-owning back-reference used for backpropagation and for reading the
// parent's visit count during selection.
type Node[A ActionLike, P PlayerLike, G GameLike[A, P, G]] struct {
	game G

	// The action that produced this node from its parent,
	// zero value at the root
	Action A

	// Legal actions not yet expanded into children, initialized to the
	// full legal-action set at creation and only ever shrinks
	untried []A

	Parent   *Node[A, P, G]
	Children []*Node[A, P, G]

	// The player whose action produced this node (the parent's side to
	// move at creation). Statistics below are reinterpreted relative to
	// this player by Value.
	mover P

	// Rollout outcomes that propagated through this node, always counted
	// from the searching player's perspective
	won, lost, drawn uint32
}

func newNode[A ActionLike, P PlayerLike, G GameLike[A, P, G]](parent *Node[A, P, G], game G, action A, mover P) *Node[A, P, G] {
	return &Node[A, P, G]{
		game:    game,
		Action:  action,
		untried: game.LegalActions(),
		Parent:  parent,
		mover:   mover,
	}
}

// The game state reached at this node
func (node *Node[A, P, G]) Game() G {
	return node.game
}

// The player whose action produced this node, for the root this is
// the side to move in the initial state
func (node *Node[A, P, G]) Mover() P {
	return node.mover
}

// Legal actions from this node's state that have no child yet
func (node *Node[A, P, G]) Untried() []A {
	return node.untried
}

// Number of simulations that passed through this node
func (node *Node[A, P, G]) Played() uint32 {
	return node.won + node.lost + node.drawn
}

// Rollout outcome counters of this node (won, lost, drawn)
func (node *Node[A, P, G]) Stats() (uint32, uint32, uint32) {
	return node.won, node.lost, node.drawn
}

// Whether this node's game has ended
func (node *Node[A, P, G]) Terminal() bool {
	return node.game.Outcome(node.game.Turn()) != Unfinished
}

// Value is the exploitation score of this node in [0, 1] as seen by
// 'player', draws count as half a win. Statistics are kept from the
// mover's viewpoint, so the score is complemented for the other side.
// Must not be called on a node with zero visits.
func (node *Node[A, P, G]) Value(player P) float64 {
	v := float64(2*node.won+node.drawn) / float64(2*node.Played())
	if player == node.mover {
		return v
	}
	return 1 - v
}

// Whether the selection descent stops at this node: a terminal state,
// a node with no children yet, or a node that still has untried actions
func (node *Node[A, P, G]) leaf() bool {
	if node.Terminal() {
		return true
	}
	return len(node.Children) == 0 || len(node.untried) > 0
}

func (node *Node[A, P, G]) addOutcome(outcome Outcome) {
	switch outcome {
	case Win:
		node.won++
	case Lose:
		node.lost++
	case Draw:
		node.drawn++
	default:
		panic("mcts: cannot backpropagate an unfinished outcome")
	}
}

func (node *Node[A, P, G]) String() string {
	return fmt.Sprintf("Node{Action=%v, w/l/d=%d/%d/%d, untried=%d, children=%d}",
		node.Action, node.won, node.lost, node.drawn, len(node.untried), len(node.Children))
}
