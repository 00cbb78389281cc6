package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"uct/config"
	"uct/experiments"
	"uct/game"
	"uct/game/tictactoe"
	"uct/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	board := flag.String("board", ".........", "Board to search, 9 cells of . X O")
	player := flag.String("player", "X", "Player to move (X or O)")
	iterations := flag.Int("iterations", 0, "Search iterations per move (overrides config)")
	exploration := flag.Float64("exploration", -1, "UCT exploration weight, 0 for pure exploitation, negative keeps config")
	seed := flag.Uint64("seed", 0, "Random seed, 0 for a time based seed (overrides config)")
	ordered := flag.Bool("ordered", false, "Expand untried moves in board order")
	experiment := flag.Bool("experiment", false, "Run the configured match-ups instead of a single search")
	games := flag.Int("games", 0, "Games per match-up (overrides config)")
	out := flag.String("out", "", "Directory for experiment records (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *iterations > 0 {
		cfg.Search.Iterations = *iterations
	}
	if *exploration >= 0 {
		cfg.Search.Exploration = exploration
	}
	if *seed > 0 {
		cfg.Search.Seed = *seed
	}
	if *ordered {
		cfg.Search.Ordered = true
	}
	if *games > 0 {
		cfg.Experiment.Games = *games
	}
	if *out != "" {
		cfg.Experiment.OutDir = *out
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug || cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *experiment {
		if err := runExperiment(cfg.Experiment); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}
	if err := findMove(cfg.Search, *board, *player); err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}
}

func runExperiment(cfg config.Experiment) error {
	pairs, err := cfg.Pairs()
	if err != nil {
		return err
	}
	dir, err := experiments.Run(cfg.Name, cfg.OutDir, cfg.Agents, pairs, cfg.Games)
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("records written")
	return nil
}

func findMove(cfg config.Search, boardText, playerText string) error {
	board, err := tictactoe.ParseBoard(boardText)
	if err != nil {
		return err
	}
	var player game.Player
	switch strings.ToUpper(playerText) {
	case "X":
		player = game.PlayerOne
	case "O":
		player = game.PlayerTwo
	default:
		return fmt.Errorf("unknown player %q, want X or O", playerText)
	}

	options := []searcher.Option{searcher.WithMetrics()}
	if cfg.Exploration != nil {
		options = append(options, searcher.WithExplorationWeight(*cfg.Exploration))
	}
	if cfg.Seed > 0 {
		options = append(options, searcher.WithSeed(cfg.Seed))
	}
	if cfg.Ordered {
		options = append(options, searcher.WithOrderedExpansion())
	}

	rules := tictactoe.Rules{}
	mcts, err := searcher.NewMCTS[tictactoe.Board, int](rules, board, player, options...)
	if err != nil {
		return err
	}

	move, err := mcts.Search(cfg.Iterations)
	if err != nil {
		return err
	}

	for _, child := range mcts.Children() {
		log.Debug().
			Int("cell", child.Action).
			Int("visits", child.Visits).
			Float64("mean", child.Mean).
			Float64("uct", child.UCT).
			Msg("root child")
	}
	metric := mcts.Metrics()
	log.Info().
		Int("move", move).
		Int("episodes", metric.Episodes).
		Int("nodes", metric.TreeSize).
		Dur("duration", metric.Duration).
		Msgf("%s plays cell %d", player, move)

	next, err := rules.Apply(board, move, player)
	if err != nil {
		return err
	}
	fmt.Print(next)
	return nil
}
