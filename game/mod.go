package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidState  = errors.New("invalid state")
)

// Player identifies one of the two sides of an alternating-turn game.
type Player int8

const (
	PlayerOne Player = iota
	PlayerTwo
)

func (p Player) Valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "player1"
	case PlayerTwo:
		return "player2"
	default:
		return fmt.Sprintf("player(%d)", int8(p))
	}
}

// Outcome is the result of a position: still running, won by one side, or drawn.
type Outcome int8

const (
	InProgress Outcome = iota
	PlayerOneWins
	PlayerTwoWins
	Draw
)

// WinFor returns the outcome in which player wins.
func WinFor(player Player) Outcome {
	if player == PlayerOne {
		return PlayerOneWins
	}
	return PlayerTwoWins
}

func (o Outcome) IsOver() bool {
	return o != InProgress
}

// WonBy reports whether the outcome is a win for player.
func (o Outcome) WonBy(player Player) bool {
	return (o == PlayerOneWins && player == PlayerOne) || (o == PlayerTwoWins && player == PlayerTwo)
}

// Winner returns the winning player, if any.
func (o Outcome) Winner() (Player, bool) {
	switch o {
	case PlayerOneWins:
		return PlayerOne, true
	case PlayerTwoWins:
		return PlayerTwo, true
	default:
		return 0, false
	}
}

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case PlayerOneWins:
		return "player1 wins"
	case PlayerTwoWins:
		return "player2 wins"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("outcome(%d)", int8(o))
	}
}
