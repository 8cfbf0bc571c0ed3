// Package ttt is a bitboard tic-tac-toe implementing the engine's game
// contract. It doubles as the integration fixture for the engine and the
// arena tests.
package ttt

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/IlikeChooros/go-uct/pkg/mcts"
)

type Square uint8
type Mark uint8

// Enum for the squares
const (
	A3 Square = iota
	B3
	C3
	A2
	B2
	C2
	A1
	B1
	C1
)

const (
	None   Mark = 0
	Cross  Mark = 1
	Circle Mark = 2
)

// Algebraic notation of the square, a3 is the top-left corner
func (sq Square) String() string {
	if sq > C1 {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq%3, 3-sq/3)
}

func (m Mark) String() string {
	switch m {
	case Cross:
		return "X"
	case Circle:
		return "O"
	default:
		return "."
	}
}

const (
	_bitboardCrossIdx  = 0
	_bitboardCircleIdx = 1

	_fullBoard uint16 = 0b111111111
)

// horizontal, vertical and diagonal patterns as bitboards
var _winningBitboardPatterns = [8]uint16{
	0b111000000, 0b000111000, 0b000000111,
	0b100100100, 0b010010010, 0b001001001,
	0b100010001, 0b001010100,
}

type Position struct {
	bitboards [2]uint16
	turn      Mark
}

func NewPosition() *Position {
	return &Position{turn: Cross}
}

// Marks on the board: (cross, circle) occupancy bitboards
func (p *Position) Bitboards() (uint16, uint16) {
	return p.bitboards[_bitboardCrossIdx], p.bitboards[_bitboardCircleIdx]
}

func (p *Position) Turn() Mark {
	return p.turn
}

// All free squares, none once the game is decided
func (p *Position) LegalActions() []Square {
	if p.winner() != None {
		return nil
	}

	free := _fullBoard ^ (p.bitboards[0] | p.bitboards[1])
	actions := make([]Square, 0, bits.OnesCount16(free))
	for free != 0 {
		actions = append(actions, Square(bits.TrailingZeros16(free)))
		free &= free - 1
	}

	return actions
}

// Put the current side's mark on the square and flip the turn.
// The square must be empty, this is not validated.
func (p *Position) Play(sq Square) {
	idx := _bitboardCrossIdx
	next := Circle
	if p.turn == Circle {
		idx = _bitboardCircleIdx
		next = Cross
	}

	p.bitboards[idx] |= 1 << sq
	p.turn = next
}

func (p *Position) Outcome(player Mark) mcts.Outcome {
	switch winner := p.winner(); {
	case winner == player:
		return mcts.Win
	case winner != None:
		return mcts.Lose
	case p.bitboards[0]|p.bitboards[1] == _fullBoard:
		return mcts.Draw
	default:
		return mcts.Unfinished
	}
}

func (p *Position) Clone() *Position {
	clone := *p
	return &clone
}

func (p *Position) winner() Mark {
	crossbb := p.bitboards[_bitboardCrossIdx]
	circlebb := p.bitboards[_bitboardCircleIdx]

	for _, pattern := range _winningBitboardPatterns {
		if crossbb&pattern == pattern {
			return Cross
		}
		if circlebb&pattern == pattern {
			return Circle
		}
	}

	return None
}

func (p *Position) String() string {
	builder := strings.Builder{}
	for sq := A3; sq <= C1; sq++ {
		mark := None
		if p.bitboards[_bitboardCrossIdx]&(1<<sq) != 0 {
			mark = Cross
		} else if p.bitboards[_bitboardCircleIdx]&(1<<sq) != 0 {
			mark = Circle
		}

		builder.WriteString(mark.String())
		if sq%3 == 2 {
			builder.WriteByte('\n')
		} else {
			builder.WriteByte(' ')
		}
	}
	return builder.String()
}
