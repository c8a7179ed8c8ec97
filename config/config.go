package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"mcts/searcher"
	"mcts/searcher/hoo"
)

type Config struct {
	Search    SearchConfig `json:"search" yaml:"search"`
	HOO       HOOConfig    `json:"hoo" yaml:"hoo"`
	Race      RaceConfig   `json:"race" yaml:"race"`
	OutputDir string       `json:"output_dir" yaml:"output_dir"`
	LogLevel  string       `json:"log_level" yaml:"log_level"`
	Metrics   bool         `json:"metrics" yaml:"metrics"`
}

type SearchConfig struct {
	Simulations   int           `json:"simulations" yaml:"simulations"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
	MaxTreeDepth  int           `json:"max_tree_depth" yaml:"max_tree_depth"`
	DefaultPolicy bool          `json:"default_policy" yaml:"default_policy"`
	Exploration   float64       `json:"exploration" yaml:"exploration"`
	Seed          uint64        `json:"seed" yaml:"seed"` // 0 seeds from the clock
	Verbose       bool          `json:"verbose" yaml:"verbose"`
}

type HOOConfig struct {
	Problem    string  `json:"problem" yaml:"problem"`
	Dimension  int     `json:"dimension" yaml:"dimension"`
	Iterations int     `json:"iterations" yaml:"iterations"`
	Min        float64 `json:"min" yaml:"min"`
	Max        float64 `json:"max" yaml:"max"`
	Gamma      float64 `json:"gamma" yaml:"gamma"`
	Nu         float64 `json:"nu" yaml:"nu"`
}

type RaceConfig struct {
	Target int `json:"target" yaml:"target"`
}

func Default() Config {
	return Config{
		Search: SearchConfig{
			Simulations:  1000,
			MaxTreeDepth: searcher.MaxTreeDepth,
			Exploration:  searcher.DefaultExploration,
		},
		HOO: HOOConfig{
			Problem:    "quadratic",
			Dimension:  1,
			Iterations: 500,
			Min:        0,
			Max:        1,
			Gamma:      hoo.DefaultGamma,
			Nu:         hoo.DefaultNu,
		},
		Race: RaceConfig{
			Target: 10,
		},
		OutputDir: "results",
		LogLevel:  "info",
	}
}

// Load merges defaults, the optional file at path and environment variables,
// in increasing priority, and validates the result.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	if err := loadEnv(&config); err != nil {
		return config, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadEnv(config *Config) error {
	if v := os.Getenv("MCTS_SIMULATIONS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MCTS_SIMULATIONS: %w", err)
		}
		config.Search.Simulations = i
	}
	if v := os.Getenv("MCTS_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MCTS_DURATION: %w", err)
		}
		config.Search.Duration = d
	}
	if v := os.Getenv("MCTS_MAX_TREE_DEPTH"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MCTS_MAX_TREE_DEPTH: %w", err)
		}
		config.Search.MaxTreeDepth = i
	}
	if v := os.Getenv("MCTS_DEFAULT_POLICY"); v != "" {
		config.Search.DefaultPolicy = v == "true" || v == "1"
	}
	if v := os.Getenv("MCTS_EXPLORATION"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MCTS_EXPLORATION: %w", err)
		}
		config.Search.Exploration = f
	}
	if v := os.Getenv("MCTS_SEED"); v != "" {
		u, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MCTS_SEED: %w", err)
		}
		config.Search.Seed = u
	}
	if v := os.Getenv("HOO_GAMMA"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("HOO_GAMMA: %w", err)
		}
		config.HOO.Gamma = f
	}
	if v := os.Getenv("HOO_ITERATIONS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HOO_ITERATIONS: %w", err)
		}
		config.HOO.Iterations = i
	}
	if v := os.Getenv("HOO_DIMENSION"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HOO_DIMENSION: %w", err)
		}
		config.HOO.Dimension = i
	}
	if v := os.Getenv("MCTS_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.Search.Simulations < 0 || c.Search.Duration < 0 {
		return fmt.Errorf("search budget must not be negative")
	}
	if c.Search.Simulations == 0 && c.Search.Duration == 0 {
		return fmt.Errorf("search needs simulations or a duration")
	}
	if c.Search.MaxTreeDepth < 1 {
		return fmt.Errorf("max_tree_depth must be >= 1")
	}
	if c.Search.Exploration < 0 {
		return fmt.Errorf("exploration must be >= 0")
	}
	if c.Race.Target < 1 {
		return fmt.Errorf("race target must be >= 1")
	}
	if err := c.HOO.Settings().Validate(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level is the configured log level, info if unset.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func (c SearchConfig) Budget() searcher.Budget {
	return searcher.Budget{Simulations: c.Simulations, Duration: c.Duration}
}

func (c SearchConfig) Options() []searcher.Option {
	options := []searcher.Option{
		searcher.WithMaxTreeDepth(c.MaxTreeDepth),
		searcher.WithDefaultPolicy(c.DefaultPolicy),
		searcher.WithVerbose(c.Verbose),
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options
}

func (c HOOConfig) Settings() hoo.Config {
	return hoo.Config{
		Dimension:  c.Dimension,
		Iterations: c.Iterations,
		Min:        c.Min,
		Max:        c.Max,
		Gamma:      c.Gamma,
		Nu:         c.Nu,
	}
}
