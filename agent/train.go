package agent

import (
	"math"

	"uct/experiments/metrics"
	"uct/game"
	"uct/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent[S any, A comparable] struct {
	rules       game.Rules[S, A]
	iterations  int
	temperature float64
	options     []searcher.Option
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples moves from the
// root visit distribution sharpened or flattened by temperature.
func NewTrainingAgent[S any, A comparable](rules game.Rules[S, A], iterations int, temperature float64, seed uint64, options ...searcher.Option) Agent[S, A] {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &trainingAgent[S, A]{
		rules:       rules,
		iterations:  iterations,
		temperature: temperature,
		options:     options,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent[S, A]) FindMove(state S, player game.Player) (A, metrics.SearchMetric, error) {
	var zero A
	options := append([]searcher.Option{searcher.WithSeed(a.rng.Uint64())}, a.options...)
	mcts, err := searcher.NewMCTS(a.rules, state, player, options...)
	if err != nil {
		return zero, metrics.SearchMetric{}, err
	}
	if _, err := mcts.Search(a.iterations); err != nil {
		return zero, mcts.Metrics(), err
	}
	policy := adjustTemperature(mcts.Policy(), a.temperature)
	return sample(policy, a.rng.Float64()), mcts.Metrics(), nil
}

func adjustTemperature[A comparable](policy []searcher.PolicyEntry[A], temperature float64) []searcher.PolicyEntry[A] {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]searcher.PolicyEntry[A], len(policy))
	for i, entry := range policy {
		prob := math.Pow(entry.Share, exponent)
		sum += prob
		adjusted[i] = searcher.PolicyEntry[A]{Action: entry.Action, Share: prob}
	}
	// Normalize
	for i := range adjusted {
		adjusted[i].Share /= sum
	}
	return adjusted
}

func sample[A comparable](policy []searcher.PolicyEntry[A], sampled float64) A {
	cumulative := 0.0
	var lastMove A
	for _, entry := range policy {
		lastMove = entry.Action
		cumulative += entry.Share
		if sampled < cumulative {
			return entry.Action
		}
	}
	return lastMove // Fallback in case of rounding errors
}
