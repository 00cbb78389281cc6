package engine

import (
	"fmt"
	"time"

	"uct/agent"
	"uct/experiments/metrics"
	"uct/game"

	"github.com/rs/zerolog/log"
)

type Local[S any, A comparable] struct {
	Rules  game.Rules[S, A]
	State  S
	Player game.Player // to move
	Agents map[game.Player]agent.Agent[S, A]
}

// LocalEngine sets up a game between first (playing starting) and second.
func LocalEngine[S any, A comparable](rules game.Rules[S, A], state S, starting game.Player, first, second agent.Agent[S, A]) *Local[S, A] {
	if first == nil || second == nil {
		panic("need two agents")
	}
	return &Local[S, A]{
		Rules:  rules,
		State:  state,
		Player: starting,
		Agents: map[game.Player]agent.Agent[S, A]{
			starting:                   first,
			rules.OtherPlayer(starting): second,
		},
	}
}

// Run executes the game loop until the rules report an outcome.
func (e *Local[S, A]) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Player.String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.Player)

	outcome := e.Rules.Winner(e.State)
	step := 1
	for !outcome.IsOver() && step <= MaxMoves {
		move, searchMetric, err := e.Agents[e.Player].FindMove(e.State, e.Player)
		if err != nil {
			return outcome, gameMetric, moveMetrics, fmt.Errorf("step %d: %s failed to find a move: %w", step, e.Player, err)
		}

		next, err := e.Rules.Apply(e.State, move, e.Player)
		if err != nil {
			return outcome, gameMetric, moveMetrics, fmt.Errorf("step %d: %s played %v: %w", step, e.Player, move, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       e.Player.String(),
			Action:       fmt.Sprint(move),
			SearchMetric: searchMetric,
		})
		log.Debug().Int("step", step).Str("player", e.Player.String()).Interface("move", move).Msg("move played")

		e.State = next
		e.Player = e.Rules.OtherPlayer(e.Player)
		outcome = e.Rules.Winner(e.State)
		step++
	}

	if !outcome.IsOver() {
		log.Warn().Msgf("stopped after %d moves without an outcome", MaxMoves)
	}

	gameMetric.Outcome = outcome.String()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return outcome, gameMetric, moveMetrics, nil
}
