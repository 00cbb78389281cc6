package experiments

import (
	"fmt"

	"uct/agent"
	"uct/engine"
	"uct/experiments/metrics"
	"uct/game"
	"uct/game/tictactoe"
	"uct/searcher"

	"github.com/rs/zerolog/log"
)

type Board = tictactoe.Board

// Run plays games per match-up between the two agent configs of every
// match-up, alternating which agent starts, and stores the records under
// dir/name. It returns the directory the records were written to.
func Run(name, dir string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, games int) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		var results tally
		for i := 0; i < games; i++ {
			// Alternate the starting agent for a fair matchup
			swapped := i%2 == 1
			first, second := config1, config2
			if swapped {
				first, second = config2, config1
			}

			outcome, gameMetric, moveMetrics, err := runGame(first, second, uint64(i))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			results.record(outcome, swapped)

			log.Debug().Msgf("completed matchup %d of %d game %d with outcome: %s", mi+1, len(matchUps), i+1, outcome)
		}
		log.Info().
			Int("agent1", config1.ID).Int("agent1_wins", results.wins[0]).
			Int("agent2", config2.ID).Int("agent2_wins", results.wins[1]).
			Int("draws", results.draws).
			Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// tally counts a match-up's results by seat rather than agent ID, so an
// agent can be matched against itself.
type tally struct {
	wins  [2]int
	draws int
}

// record adds one game. swapped means the match-up's second agent played X.
func (t *tally) record(outcome game.Outcome, swapped bool) {
	winner, ok := outcome.Winner()
	if !ok {
		t.draws++
		return
	}
	seat := 0
	if winner == game.PlayerTwo {
		seat = 1
	}
	if swapped {
		seat = 1 - seat
	}
	t.wins[seat]++
}

// runGame executes a single game from the empty board; first plays X.
func runGame(first, second metrics.AgentConfig, salt uint64) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	rules := tictactoe.Rules{}
	agent1, err := CreateAgent(first, salt)
	if err != nil {
		return game.InProgress, metrics.GameMetric{}, nil, err
	}
	agent2, err := CreateAgent(second, salt)
	if err != nil {
		return game.InProgress, metrics.GameMetric{}, nil, err
	}

	var e engine.Engine = engine.LocalEngine[Board, int](rules, Board{}, game.PlayerOne, agent1, agent2)
	return e.Run()
}

// CreateAgent builds the tic-tac-toe agent described by config. The agent's
// seed is offset by salt so repeated games differ.
func CreateAgent(config metrics.AgentConfig, salt uint64) (agent.Agent[Board, int], error) {
	rules := tictactoe.Rules{}
	seed := config.Seed + salt

	options := searchOptions(config)

	switch config.Kind {
	case metrics.MCTSAgent, "":
		if config.Iterations <= 0 {
			return nil, fmt.Errorf("agent %d: %w", config.ID, searcher.ErrInvalidBudget)
		}
		return agent.NewEvaluationAgent[Board, int](rules, config.Iterations, seed, options...), nil
	case metrics.TrainingAgent:
		if config.Iterations <= 0 {
			return nil, fmt.Errorf("agent %d: %w", config.ID, searcher.ErrInvalidBudget)
		}
		return agent.NewTrainingAgent[Board, int](rules, config.Iterations, config.Temperature, seed, options...), nil
	case metrics.RandomAgent:
		return agent.NewRandomAgent[Board, int](rules, seed), nil
	default:
		return nil, fmt.Errorf("agent %d: unknown kind %q", config.ID, config.Kind)
	}
}

// searchOptions maps config to search options. A nil exploration keeps the
// searcher's default weight; zero is pure exploitation.
func searchOptions(config metrics.AgentConfig) []searcher.Option {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Exploration != nil {
		options = append(options, searcher.WithExplorationWeight(*config.Exploration))
	}
	return options
}
