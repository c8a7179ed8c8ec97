package searcher

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mcts/experiments/metrics"
)

// Hyperparameters for MCTS

const DefaultExploration = 1.0 // UCB exploration constant C

const MaxTreeDepth = 30000 // Tree policy depth cap for evaluable nodes, in edges from the root

// Config holds the engine settings shared by every node type.
type Config struct {
	MaxTreeDepth  int
	DefaultPolicy bool // Stop at unevaluated non-exact nodes and roll out
	Verbose       bool
	Seed          uint64
	Logger        zerolog.Logger
	Metrics       metrics.Collector
}

type Option func(c *Config)

// WithMaxTreeDepth stops the descent at the first evaluable node depth edges
// below the root, so at most depth selections are made through evaluable
// nodes. Non-positive values keep the default.
func WithMaxTreeDepth(depth int) Option {
	return func(c *Config) {
		if depth > 0 {
			c.MaxTreeDepth = depth
		}
	}
}

func WithDefaultPolicy(enabled bool) Option {
	return func(c *Config) {
		c.DefaultPolicy = enabled
	}
}

func WithVerbose(verbose bool) Option {
	return func(c *Config) {
		c.Verbose = verbose
	}
}

func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(c *Config) {
		if collector != nil {
			c.Metrics = collector
		}
	}
}

func newConfig(options ...Option) Config {
	c := Config{ // Default values
		MaxTreeDepth: MaxTreeDepth,
		Seed:         uint64(time.Now().UnixNano()),
		Logger:       log.Logger,
		Metrics:      metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&c)
	}
	if c.Verbose {
		c.Logger = c.Logger.Level(zerolog.DebugLevel)
	} else if c.Logger.GetLevel() < zerolog.InfoLevel {
		c.Logger = c.Logger.Level(zerolog.InfoLevel)
	}
	return c
}

// Budget bounds a run by simulation count or wall-clock time. Simulations
// take precedence when both are set.
type Budget struct {
	Simulations int
	Duration    time.Duration
}
