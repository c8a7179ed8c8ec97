package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector records search metrics like the atomic collector and
// also exports them as prometheus series.
type PrometheusCollector struct {
	collector
	episodes prometheus.Counter
	rollouts prometheus.Counter
	depth    prometheus.Histogram
	duration prometheus.Histogram
}

// NewPrometheusCollector registers its series on reg. Registering two
// collectors on the same registry fails with prometheus.AlreadyRegisteredError.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	c := &PrometheusCollector{
		episodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mcts",
			Name:      "episodes_total",
			Help:      "Completed simulate-and-backpropagate cycles.",
		}),
		rollouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mcts",
			Name:      "rollouts_total",
			Help:      "Simulations evaluated with the default policy.",
		}),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mcts",
			Name:      "descent_depth",
			Help:      "Depth reached by the tree policy per simulation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mcts",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a search run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, series := range []prometheus.Collector{c.episodes, c.rollouts, c.depth, c.duration} {
		if err := reg.Register(series); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (m *PrometheusCollector) AddEpisode() {
	m.collector.AddEpisode()
	m.episodes.Inc()
}

func (m *PrometheusCollector) AddRollout() {
	m.collector.AddRollout()
	m.rollouts.Inc()
}

func (m *PrometheusCollector) ObserveDepth(depth int) {
	m.collector.ObserveDepth(depth)
	m.depth.Observe(float64(depth))
}

func (m *PrometheusCollector) Complete() SearchMetric {
	metric := m.collector.Complete()
	m.duration.Observe(metric.Duration.Seconds())
	return metric
}
