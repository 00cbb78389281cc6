package searcher

import (
	"errors"

	"uct/game"
)

var (
	ErrInvalidState    = errors.New("invalid initial state")
	ErrInvalidBudget   = errors.New("iteration budget must be positive")
	ErrNoLegalMoves    = errors.New("no legal moves")
	ErrDuplicateAction = errors.New("action already has a child")
	ErrEmptyChildren   = errors.New("node has no children")
)

// NodeStats is a read-only snapshot of one node's statistics.
type NodeStats[A comparable] struct {
	Action  A
	Player  game.Player // Player who made Action
	Visits  int
	Value   float64
	Mean    float64
	UCT     float64
	Outcome game.Outcome
}

// PolicyEntry is the share of root visits spent on one action.
type PolicyEntry[A comparable] struct {
	Action A
	Share  float64
}
