package agent

import (
	"uct/experiments/metrics"
	"uct/game"
)

type Agent[S any, A comparable] interface {
	// FindMove returns a move for player and the search metrics (if collected)
	FindMove(state S, player game.Player) (A, metrics.SearchMetric, error)
}
