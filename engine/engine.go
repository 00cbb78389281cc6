package engine

import (
	"uct/experiments/metrics"
	"uct/game"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it is decided or a max number of moves is reached
	Run() (outcome game.Outcome, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
