package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsNode(won, lost, drawn uint32, mover int) *Node[int, int, *soloGame] {
	return &Node[int, int, *soloGame]{won: won, lost: lost, drawn: drawn, mover: mover}
}

func TestNodePlayed(t *testing.T) {
	node := statsNode(3, 2, 1, 1)
	assert.EqualValues(t, 6, node.Played())

	won, lost, drawn := node.Stats()
	assert.EqualValues(t, 3, won)
	assert.EqualValues(t, 2, lost)
	assert.EqualValues(t, 1, drawn)
}

func TestNodeValueBounds(t *testing.T) {
	cases := []struct {
		name             string
		won, lost, drawn uint32
	}{
		{"all wins", 10, 0, 0},
		{"all losses", 0, 10, 0},
		{"all draws", 0, 0, 10},
		{"mixed", 4, 3, 3},
		{"single visit", 0, 1, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			node := statsNode(c.won, c.lost, c.drawn, 1)
			for _, player := range []int{1, 2} {
				v := node.Value(player)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		})
	}
}

func TestNodeValueDrawsAreHalfWins(t *testing.T) {
	node := statsNode(0, 0, 8, 1)
	assert.Equal(t, 0.5, node.Value(1))
	assert.Equal(t, 0.5, node.Value(2))
}

func TestNodeValuePerspective(t *testing.T) {
	// Mover is player 2, the searching player 1 sees the complement
	node := statsNode(6, 2, 2, 2)

	assert.Equal(t, 0.7, node.Value(2), "mover's own view")
	assert.InDelta(t, 0.3, node.Value(1), 1e-12, "opponent view is the complement")
	assert.InDelta(t, 1.0, node.Value(1)+node.Value(2), 1e-12)
}

func TestNodeAddOutcome(t *testing.T) {
	node := statsNode(0, 0, 0, 1)
	node.addOutcome(Win)
	node.addOutcome(Win)
	node.addOutcome(Lose)
	node.addOutcome(Draw)

	won, lost, drawn := node.Stats()
	assert.EqualValues(t, 2, won)
	assert.EqualValues(t, 1, lost)
	assert.EqualValues(t, 1, drawn)

	require.Panics(t, func() { node.addOutcome(Unfinished) })
}

func TestNodeLeaf(t *testing.T) {
	root := newNode(nil, &soloGame{}, 0, 1)
	require.False(t, root.Terminal())
	assert.True(t, root.leaf(), "a childless node is a leaf")

	// Hang one child on it, one untried action remains
	child := newNode(root, &soloGame{played: true, result: Win}, winningAction, 1)
	root.Children = append(root.Children, child)
	root.untried = root.untried[:1]
	assert.True(t, root.leaf(), "untried actions keep a node selectable as leaf")

	root.untried = root.untried[:0]
	assert.False(t, root.leaf(), "fully expanded interior node")

	assert.True(t, child.Terminal())
	assert.True(t, child.leaf(), "terminal nodes are always leaves")
}

func TestOutcomeOpposite(t *testing.T) {
	assert.Equal(t, Lose, Win.Opposite())
	assert.Equal(t, Win, Lose.Opposite())
	assert.Equal(t, Draw, Draw.Opposite())
	assert.Equal(t, Unfinished, Unfinished.Opposite())
}
