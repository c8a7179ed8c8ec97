package hoo

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"mcts/searcher"
)

const (
	DefaultGamma = 0.5
	DefaultNu    = 1.0
)

type Config struct {
	Dimension  int
	Iterations int
	Min        float64 // Lower bound of every dimension
	Max        float64 // Upper bound of every dimension
	Gamma      float64 // Slack decay per depth, in (0, 1)
	Nu         float64 // Slack scale
}

func (c Config) Validate() error {
	switch {
	case c.Dimension < 1:
		return fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidConfig, c.Dimension)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	case !(c.Min < c.Max) || math.IsInf(c.Min, 0) || math.IsInf(c.Max, 0):
		return fmt.Errorf("%w: empty domain [%g, %g]", ErrInvalidConfig, c.Min, c.Max)
	case !(c.Gamma > 0 && c.Gamma < 1):
		return fmt.Errorf("%w: gamma must be in (0, 1), got %g", ErrInvalidConfig, c.Gamma)
	case !(c.Nu > 0) || math.IsInf(c.Nu, 0):
		return fmt.Errorf("%w: nu must be positive and finite, got %g", ErrInvalidConfig, c.Nu)
	}
	return nil
}

// Optimiser maximises a Problem over [Min, Max]^Dimension with HOO on top of
// the generic engine.
type Optimiser struct {
	*searcher.MCTS[*Node]
	config   Config
	logger   zerolog.Logger
	root     *Node
	bounds   *BSelector
	backprop *TruncatedBackpropagator
}

func NewOptimiser(problem Problem, config Config, options ...searcher.Option) (*Optimiser, error) {
	if problem == nil {
		return nil, fmt.Errorf("%w: missing problem", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	lower := make([]float64, config.Dimension)
	upper := make([]float64, config.Dimension)
	for d := range lower {
		lower[d] = config.Min
		upper[d] = config.Max
	}

	depthCap := DepthCap(config.Gamma, config.Iterations)
	root := newRoot(problem, lower, upper, depthCap)
	root.Split()

	bounds := NewBSelector(config.Gamma, config.Nu, depthCap)
	backprop := NewTruncatedBackpropagator(bounds, config.Iterations)

	mcts := searcher.NewMCTS(root, options...)
	mcts.SetDeterministicNodeSelector(bounds)
	mcts.SetBackpropagator(backprop)

	return &Optimiser{
		MCTS:     mcts,
		config:   config,
		logger:   mcts.Config().Logger.With().Str("component", "hoo").Logger(),
		root:     root,
		bounds:   bounds,
		backprop: backprop,
	}, nil
}

// Optimise spends what is left of the iteration budget and returns the
// number of samples taken.
func (o *Optimiser) Optimise() (int, error) {
	remaining := o.config.Iterations - o.backprop.Len()
	if remaining <= 0 {
		return 0, nil
	}

	done, err := o.RunForSimulations(remaining)
	if err != nil {
		return done, fmt.Errorf("failed to optimise: %w", err)
	}

	best := o.BestNode()
	o.logger.Debug().
		Int("iterations", done).
		Int("depth_cap", o.DepthCap()).
		Float64("best_value", o.BestValue()).
		Str("best_node", best.ID()).
		Msg("optimisation completed")
	return done, nil
}

// BestNode is the deepest reliably sampled box: the greedy walk by mean
// over visited children.
func (o *Optimiser) BestNode() *Node {
	return bestNode(o.root)
}

func (o *Optimiser) BestValue() float64 {
	return o.backprop.BestValue()
}

func (o *Optimiser) BestSample() []float64 {
	return o.backprop.BestSample()
}

// BestRootSample replays the recorded history from a fresh root and returns
// the best sample it settles on.
func (o *Optimiser) BestRootSample() ([]float64, error) {
	result, err := o.Replay()
	if err != nil {
		return nil, err
	}
	return result.BestSample, nil
}

func (o *Optimiser) Replay() (*ReplayResult, error) {
	return o.Replayer().Replay(o.backprop.Samples(), o.backprop.Rewards())
}

// Replayer returns a replayer over the same domain and depth cap.
func (o *Optimiser) Replayer() *Replayer {
	return NewReplayer(o.root.min, o.root.max, o.DepthCap())
}

func (o *Optimiser) Samples() [][]float64 {
	return o.backprop.Samples()
}

func (o *Optimiser) Rewards() []float64 {
	return o.backprop.Rewards()
}

func (o *Optimiser) DepthCap() int {
	return o.bounds.MaxDepth()
}

func (o *Optimiser) Bounds() *BSelector {
	return o.bounds
}
