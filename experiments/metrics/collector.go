package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration time.Duration
	Episodes int
	Rollouts int // Simulations that ended in a default-policy rollout
	MaxDepth int // Deepest node reached by the tree policy
}

type MoveMetric struct {
	Step   int
	Player int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // -1 when the game hit the turn limit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	AddEpisode()
	AddRollout()
	ObserveDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	startTime time.Time
	episodes  atomic.Int32
	rollouts  atomic.Int32
	maxDepth  atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.rollouts.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) ObserveDepth(depth int) {
	for {
		current := m.maxDepth.Load()
		if int32(depth) <= current || m.maxDepth.CompareAndSwap(current, int32(depth)) {
			return
		}
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration: time.Since(m.startTime),
		Episodes: int(m.episodes.Load()),
		Rollouts: int(m.rollouts.Load()),
		MaxDepth: int(m.maxDepth.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddRollout()            {}
func (m *dummyCollector) ObserveDepth(depth int) {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
