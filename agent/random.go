package agent

import (
	"fmt"

	"uct/experiments/metrics"
	"uct/game"
	"uct/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent[S any, A comparable] struct {
	rules game.Rules[S, A]
	rng   *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal moves.
func NewRandomAgent[S any, A comparable](rules game.Rules[S, A], seed uint64) Agent[S, A] {
	return &randomAgent[S, A]{rules: rules, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent[S, A]) FindMove(state S, player game.Player) (A, metrics.SearchMetric, error) {
	var zero A
	moves := a.rules.LegalActions(state)
	if len(moves) == 0 {
		return zero, metrics.SearchMetric{}, fmt.Errorf("%w for %s", searcher.ErrNoLegalMoves, player)
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
