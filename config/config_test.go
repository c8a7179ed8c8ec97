package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"mcts/searcher"
	"mcts/searcher/hoo"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		config, err := Load("")

		require.NoError(t, err)
		require.Equal(t, Default(), config)
	})

	t.Run("yaml file overrides defaults", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
search:
  simulations: 250
  duration: 2s
  default_policy: true
  exploration: 0.7
hoo:
  gamma: 0.8
  iterations: 100
log_level: debug
`)

		config, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 250, config.Search.Simulations)
		require.Equal(t, 2*time.Second, config.Search.Duration)
		require.True(t, config.Search.DefaultPolicy)
		require.Equal(t, 0.7, config.Search.Exploration)
		require.Equal(t, 0.8, config.HOO.Gamma)
		require.Equal(t, 100, config.HOO.Iterations)
		require.Equal(t, 1, config.HOO.Dimension, "Unset fields should keep defaults")
		require.Equal(t, zerolog.DebugLevel, config.Level())
	})

	t.Run("json file is accepted", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"search": {"simulations": 42}, "race": {"target": 7}}`)

		config, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 42, config.Search.Simulations)
		require.Equal(t, 7, config.Race.Target)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "search:\n  simulations: 250\n")
		t.Setenv("MCTS_SIMULATIONS", "99")
		t.Setenv("MCTS_DURATION", "150ms")
		t.Setenv("MCTS_MAX_TREE_DEPTH", "12")
		t.Setenv("MCTS_DEFAULT_POLICY", "1")
		t.Setenv("MCTS_EXPLORATION", "2.5")
		t.Setenv("MCTS_SEED", "7")
		t.Setenv("HOO_GAMMA", "0.3")
		t.Setenv("HOO_ITERATIONS", "64")
		t.Setenv("HOO_DIMENSION", "3")
		t.Setenv("MCTS_LOG_LEVEL", "warn")

		config, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 99, config.Search.Simulations)
		require.Equal(t, 150*time.Millisecond, config.Search.Duration)
		require.Equal(t, 12, config.Search.MaxTreeDepth)
		require.True(t, config.Search.DefaultPolicy)
		require.Equal(t, 2.5, config.Search.Exploration)
		require.Equal(t, uint64(7), config.Search.Seed)
		require.Equal(t, 0.3, config.HOO.Gamma)
		require.Equal(t, 64, config.HOO.Iterations)
		require.Equal(t, 3, config.HOO.Dimension)
		require.Equal(t, zerolog.WarnLevel, config.Level())
	})

	t.Run("malformed environment fails", func(t *testing.T) {
		t.Setenv("MCTS_SIMULATIONS", "many")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("unparsable file fails", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "search: [")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "hoo:\n  gamma: 1.5\n")
		_, err := Load(path)
		require.ErrorIs(t, err, hoo.ErrInvalidConfig)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"negative simulations", func(c *Config) { c.Search.Simulations = -1 }},
		{"no budget", func(c *Config) { c.Search.Simulations = 0 }},
		{"zero depth", func(c *Config) { c.Search.MaxTreeDepth = 0 }},
		{"negative exploration", func(c *Config) { c.Search.Exploration = -1 }},
		{"zero target", func(c *Config) { c.Race.Target = 0 }},
		{"zero dimension", func(c *Config) { c.HOO.Dimension = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := Default()
			test.modify(&config)
			require.Error(t, config.Validate())
		})
	}

	t.Run("duration alone is a budget", func(t *testing.T) {
		config := Default()
		config.Search.Simulations = 0
		config.Search.Duration = time.Second
		require.NoError(t, config.Validate())
	})
}

func TestConversions(t *testing.T) {
	t.Run("search options configure the engine", func(t *testing.T) {
		config := Default().Search
		config.MaxTreeDepth = 5
		config.DefaultPolicy = true
		config.Seed = 11

		mcts := searcher.NewMCTS[*stubNode](&stubNode{}, config.Options()...)

		require.Equal(t, 5, mcts.Config().MaxTreeDepth)
		require.True(t, mcts.Config().DefaultPolicy)
		require.Equal(t, uint64(11), mcts.Config().Seed)
		require.Equal(t, searcher.Budget{Simulations: 1000}, config.Budget())
	})

	t.Run("hoo settings", func(t *testing.T) {
		settings := Default().HOO.Settings()
		require.Equal(t, hoo.Config{Dimension: 1, Iterations: 500, Min: 0, Max: 1, Gamma: 0.5, Nu: 1}, settings)
	})
}

type stubNode struct {
	stats searcher.Statistics
}

func (s *stubNode) Init()                                  {}
func (s *stubNode) Children() []*stubNode                  { return nil }
func (s *stubNode) Type() searcher.NodeType                { return searcher.Deterministic }
func (s *stubNode) Player() int                            { return 0 }
func (s *stubNode) IsLeaf() bool                           { return true }
func (s *stubNode) CanBeEvaluated() bool                   { return true }
func (s *stubNode) IsFirstTime() bool                      { return false }
func (s *stubNode) SetFirstTime(bool)                      {}
func (s *stubNode) Evaluate() searcher.Reward              { return searcher.Reward{0} }
func (s *stubNode) EvaluateDefaultPolicy() searcher.Reward { return searcher.Reward{0} }
func (s *stubNode) Statistics() *searcher.Statistics       { return &s.stats }
