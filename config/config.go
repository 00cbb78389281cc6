package config

import (
	"fmt"
	"os"

	"uct/experiments/metrics"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	Iterations = 1000
	Games      = 10
	OutDir     = "experiments"
)

type Search struct {
	Iterations  int      `yaml:"iterations"`
	Exploration *float64 `yaml:"exploration"` // nil keeps the searcher default
	Seed        uint64   `yaml:"seed"`
	Ordered     bool     `yaml:"ordered"`
}

type Experiment struct {
	Name     string                `yaml:"name"`
	Games    int                   `yaml:"games"`
	OutDir   string                `yaml:"out_dir"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
	MatchUps [][2]int              `yaml:"match_ups"` // Pairs of AgentConfig.ID
}

type Config struct {
	Debug      bool       `yaml:"debug"`
	Search     Search     `yaml:"search"`
	Experiment Experiment `yaml:"experiment"`
}

func Default() Config {
	return Config{
		Search: Search{
			Iterations: Iterations,
		},
		Experiment: Experiment{
			Name:   "mcts_vs_random",
			Games:  Games,
			OutDir: OutDir,
			Agents: []metrics.AgentConfig{
				{ID: 1, Kind: metrics.MCTSAgent, Iterations: Iterations, Seed: 1},
				{ID: 2, Kind: metrics.RandomAgent, Seed: 2},
			},
			MatchUps: [][2]int{{1, 2}},
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Search.Iterations <= 0 {
		return fmt.Errorf("search iterations must be positive, got %d", c.Search.Iterations)
	}
	if c.Search.Exploration != nil && *c.Search.Exploration < 0 {
		return fmt.Errorf("search exploration must not be negative, got %g", *c.Search.Exploration)
	}
	for _, a := range c.Experiment.Agents {
		if a.Exploration != nil && *a.Exploration < 0 {
			return fmt.Errorf("agent %d exploration must not be negative, got %g", a.ID, *a.Exploration)
		}
	}
	if c.Experiment.Games <= 0 {
		return fmt.Errorf("experiment games must be positive, got %d", c.Experiment.Games)
	}
	_, err := c.Experiment.Pairs()
	return err
}

// Pairs resolves the match-ups to agent configs.
func (e Experiment) Pairs() ([][2]metrics.AgentConfig, error) {
	byID := make(map[int]metrics.AgentConfig, len(e.Agents))
	for _, a := range e.Agents {
		if _, ok := byID[a.ID]; ok {
			return nil, fmt.Errorf("duplicate agent id %d", a.ID)
		}
		byID[a.ID] = a
	}

	pairs := make([][2]metrics.AgentConfig, 0, len(e.MatchUps))
	for _, m := range e.MatchUps {
		a, ok := byID[m[0]]
		if !ok {
			return nil, fmt.Errorf("match-up refers to unknown agent %d", m[0])
		}
		b, ok := byID[m[1]]
		if !ok {
			return nil, fmt.Errorf("match-up refers to unknown agent %d", m[1])
		}
		pairs = append(pairs, [2]metrics.AgentConfig{a, b})
	}
	return pairs, nil
}
