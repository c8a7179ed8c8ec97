package hoo

import (
	"fmt"
	"slices"
)

// Replayer rebuilds a HOO tree from a recorded (point, reward) history. Each
// point is routed by containment down to a leaf of the tree built so far,
// which is then split exactly as in the live run. A history of box centres
// therefore reproduces the live tree node for node.
type Replayer struct {
	min      []float64
	max      []float64
	depthCap int
}

func NewReplayer(lower, upper []float64, depthCap int) *Replayer {
	return &Replayer{min: slices.Clone(lower), max: slices.Clone(upper), depthCap: max(1, depthCap)}
}

type ReplayResult struct {
	BestSample []float64
	BestValue  float64
	// Trajectory[i] is the best sample after the first i+1 steps.
	Trajectory [][]float64
	Values     []float64
	// BestNode is the greedy best box of the rebuilt tree.
	BestNode *Node
}

func (r *Replayer) Replay(samples [][]float64, rewards []float64) (*ReplayResult, error) {
	if len(samples) != len(rewards) {
		return nil, fmt.Errorf("%w: %d samples, %d rewards", ErrHistoryMismatch, len(samples), len(rewards))
	}

	root := newRoot(nil, r.min, r.max, r.depthCap)
	root.Split()
	history := NewTruncatedBackpropagator(nil, len(rewards))
	result := &ReplayResult{
		Trajectory: make([][]float64, 0, len(rewards)),
		Values:     make([]float64, 0, len(rewards)),
	}

	for i, point := range samples {
		if !root.Contains(point) {
			return nil, fmt.Errorf("%w: step %d point %v", ErrOutsideDomain, i, point)
		}

		path := []*Node{root}
		for node := root.route(point); node != nil; node = node.route(point) {
			path = append(path, node)
		}
		if err := history.record(path, slices.Clone(point), rewards[i]); err != nil {
			return nil, err
		}
		result.Trajectory = append(result.Trajectory, history.BestSample())
		result.Values = append(result.Values, history.BestValue())
	}

	result.BestSample = history.BestSample()
	result.BestValue = history.BestValue()
	result.BestNode = bestNode(root)
	return result, nil
}
