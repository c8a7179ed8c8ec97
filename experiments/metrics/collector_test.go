package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts episodes and rollouts", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		for i := 0; i < 5; i++ {
			c.AddEpisode()
		}
		c.AddRollout()
		c.AddRollout()

		metric := c.Complete()
		require.Equal(t, 5, metric.Episodes, "Should count every episode")
		require.Equal(t, 2, metric.Rollouts, "Should count every rollout")
		require.GreaterOrEqual(t, metric.Duration.Nanoseconds(), int64(0))
	})

	t.Run("keeps the deepest observed depth", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		for _, depth := range []int{3, 7, 2, 7, 5} {
			c.ObserveDepth(depth)
		}
		require.Equal(t, 7, c.Complete().MaxDepth)
	})

	t.Run("start resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start()
		c.AddEpisode()
		c.ObserveDepth(4)
		c.Complete()

		c.Start()
		metric := c.Complete()
		require.Zero(t, metric.Episodes, "Should reset episodes between runs")
		require.Zero(t, metric.MaxDepth, "Should reset depth between runs")
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start()
		c.AddEpisode()
		c.ObserveDepth(9)
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestPrometheusCollector(t *testing.T) {
	t.Run("exports counters", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		c, err := NewPrometheusCollector(reg)
		require.NoError(t, err)

		c.Start()
		c.AddEpisode()
		c.AddEpisode()
		c.AddRollout()
		c.ObserveDepth(3)
		metric := c.Complete()

		require.Equal(t, 2, metric.Episodes)
		require.Equal(t, 3, metric.MaxDepth)
		require.Equal(t, 2.0, testutil.ToFloat64(c.episodes))
		require.Equal(t, 1.0, testutil.ToFloat64(c.rollouts))
		require.Equal(t, 1, testutil.CollectAndCount(c.depth), "Should expose one depth histogram")
	})

	t.Run("counters accumulate across runs", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		c, err := NewPrometheusCollector(reg)
		require.NoError(t, err)

		for run := 0; run < 3; run++ {
			c.Start()
			c.AddEpisode()
			require.Equal(t, 1, c.Complete().Episodes, "Should report per-run episodes")
		}
		require.Equal(t, 3.0, testutil.ToFloat64(c.episodes), "Should keep the lifetime total")
	})

	t.Run("fails on duplicate registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := NewPrometheusCollector(reg)
		require.NoError(t, err)

		_, err = NewPrometheusCollector(reg)
		require.Error(t, err, "Should refuse to register the same series twice")
	})
}
