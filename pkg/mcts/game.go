package mcts

// Constraint for action values, anything comparable works (ints, small structs...).
// Actions are copied into the tree, so keep them cheap to copy.
type ActionLike comparable

// Constraint for player identifiers
type PlayerLike comparable

// Result of a game from a specific player's perspective
type Outcome uint8

const (
	// The game is still in progress
	Unfinished Outcome = iota
	Win
	Lose
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	case Draw:
		return "Draw"
	default:
		return "Unfinished"
	}
}

// Opposite returns the outcome seen by the other side of a
// two-player zero-sum game (a draw stays a draw)
func (o Outcome) Opposite() Outcome {
	switch o {
	case Win:
		return Lose
	case Lose:
		return Win
	default:
		return o
	}
}

// GameLike is the capability contract every game must implement to be
// searchable. The engine owns the state handed to New and every state
// produced by Clone+Play, the caller must not touch them afterwards.
//
// The contract is assumed well-behaved and is not validated defensively:
// Play with an illegal action is undefined behavior, and a state with no
// legal actions must report a terminal Outcome (otherwise a rollout
// cannot make progress and the engine panics).
type GameLike[A ActionLike, P PlayerLike, G any] interface {
	// All actions available in this state. Must be finite, an empty
	// result means this exact state cannot be expanded any further.
	LegalActions() []A

	// Apply the action to this state (deterministic transition)
	Play(A)

	// The player to act in this state
	Turn() P

	// Result of the game from the given player's perspective,
	// Unfinished if the game is still going
	Outcome(P) Outcome

	// Deep copy, sharing no state with the receiver
	Clone() G
}
