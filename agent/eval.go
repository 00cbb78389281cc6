package agent

import (
	"uct/experiments/metrics"
	"uct/game"
	"uct/searcher"

	"golang.org/x/exp/rand"
)

type evaluationAgent[S any, A comparable] struct {
	rules      game.Rules[S, A]
	iterations int
	options    []searcher.Option
	rng        *rand.Rand
}

// NewEvaluationAgent returns an agent that plays the most visited move of a
// fresh search for every position. Each search is seeded from seed.
func NewEvaluationAgent[S any, A comparable](rules game.Rules[S, A], iterations int, seed uint64, options ...searcher.Option) Agent[S, A] {
	return &evaluationAgent[S, A]{
		rules:      rules,
		iterations: iterations,
		options:    options,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

func (a *evaluationAgent[S, A]) FindMove(state S, player game.Player) (A, metrics.SearchMetric, error) {
	var zero A
	options := append([]searcher.Option{searcher.WithSeed(a.rng.Uint64())}, a.options...)
	mcts, err := searcher.NewMCTS(a.rules, state, player, options...)
	if err != nil {
		return zero, metrics.SearchMetric{}, err
	}
	move, err := mcts.Search(a.iterations)
	return move, mcts.Metrics(), err
}
