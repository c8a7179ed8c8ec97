package hoo

import (
	"fmt"
	"math"
	"slices"

	"mcts/searcher"
)

// TruncatedBackpropagator folds rewards into node means, keeps each box's
// local maximum so U never drops below a reward already seen inside the box,
// and records the (point, reward) history up to a fixed capacity. The sampled
// leaf is split afterwards, so the tree grows by one box per sample until the
// depth cap.
type TruncatedBackpropagator struct {
	bounds   *BSelector
	capacity int
	samples  [][]float64
	rewards  []float64
	best     int
}

// NewTruncatedBackpropagator refreshes B-values through bounds after every
// sample. A nil bounds only records.
func NewTruncatedBackpropagator(bounds *BSelector, capacity int) *TruncatedBackpropagator {
	return &TruncatedBackpropagator{
		bounds:   bounds,
		capacity: capacity,
		samples:  make([][]float64, 0, capacity),
		rewards:  make([]float64, 0, capacity),
		best:     -1,
	}
}

func (b *TruncatedBackpropagator) Backpropagate(path []*Node, reward searcher.Reward) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	if len(reward) == 0 {
		return fmt.Errorf("%w: player 0, 0 rewards", searcher.ErrRewardIndex)
	}

	if err := b.record(path, path[len(path)-1].Sample(), reward[0]); err != nil {
		return err
	}
	if b.bounds != nil {
		b.bounds.Refresh(path[0], len(b.rewards))
	}
	return nil
}

func (b *TruncatedBackpropagator) record(path []*Node, point []float64, reward float64) error {
	if len(b.rewards) >= b.capacity {
		return fmt.Errorf("%w: capacity %d", ErrHistoryFull, b.capacity)
	}

	for _, node := range path {
		node.stats.Add(reward)
		node.localMax = math.Max(node.localMax, reward)
	}
	path[len(path)-1].Split()

	b.samples = append(b.samples, point)
	b.rewards = append(b.rewards, reward)
	if b.best < 0 || reward > b.rewards[b.best] {
		b.best = len(b.rewards) - 1
	}
	return nil
}

func (b *TruncatedBackpropagator) Len() int {
	return len(b.rewards)
}

// BestSample is the first sampled point with the highest reward, or nil
// before any sample.
func (b *TruncatedBackpropagator) BestSample() []float64 {
	if b.best < 0 {
		return nil
	}
	return slices.Clone(b.samples[b.best])
}

// BestValue is -inf before any sample.
func (b *TruncatedBackpropagator) BestValue() float64 {
	if b.best < 0 {
		return math.Inf(-1)
	}
	return b.rewards[b.best]
}

func (b *TruncatedBackpropagator) Samples() [][]float64 {
	samples := make([][]float64, len(b.samples))
	for i, point := range b.samples {
		samples[i] = slices.Clone(point)
	}
	return samples
}

func (b *TruncatedBackpropagator) Rewards() []float64 {
	return slices.Clone(b.rewards)
}
