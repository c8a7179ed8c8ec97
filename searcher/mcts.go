package searcher

import (
	"fmt"
	"reflect"
	"time"

	"mcts/experiments/metrics"

	"github.com/rs/zerolog"
)

// MCTS grows a tree under root by repeated descend, evaluate and
// backpropagate cycles. It is single threaded: one simulation always
// completes before the next starts.
type MCTS[N Node[N]] struct {
	root           N
	config         Config
	logger         zerolog.Logger
	selectors      map[NodeType]Selector[N]
	actionSelector Selector[N]
	backpropagator Backpropagator[N]
	metrics        metrics.Collector
	metric         metrics.SearchMetric
	simulations    int
}

// NewMCTS returns an engine with UCB for deterministic nodes, minimising
// UCB for adversarial nodes, weight-proportional sampling for chance nodes,
// best-mean action selection and mean backpropagation. All of them can be
// replaced with the setters.
func NewMCTS[N Node[N]](root N, options ...Option) *MCTS[N] {
	config := newConfig(options...)
	m := &MCTS[N]{
		root:   root,
		config: config,
		logger: config.Logger.With().Str("component", "mcts").Logger(),
		selectors: map[NodeType]Selector[N]{
			Deterministic: NewUCB[N](DefaultExploration),
			Adversarial:   NewAdversarialUCB[N](DefaultExploration),
			Stochastic:    NewChanceProportional[N](config.Seed),
		},
		actionSelector: NewActionSelector[N](),
		backpropagator: NewMeanBackpropagator[N](),
		metrics:        config.Metrics,
	}
	return m
}

func (m *MCTS[N]) Root() N {
	return m.root
}

// SetRoot discards the current tree.
func (m *MCTS[N]) SetRoot(root N) {
	m.root = root
}

func (m *MCTS[N]) Config() Config {
	return m.config
}

// SetSelector binds the selector used when descending into children of the
// given type.
func (m *MCTS[N]) SetSelector(t NodeType, selector Selector[N]) {
	m.selectors[t] = selector
}

func (m *MCTS[N]) SetDeterministicNodeSelector(selector Selector[N]) {
	m.SetSelector(Deterministic, selector)
}

func (m *MCTS[N]) SetChanceNodeSelector(selector Selector[N]) {
	m.SetSelector(Stochastic, selector)
}

func (m *MCTS[N]) SetAdversarialNodeSelector(selector Selector[N]) {
	m.SetSelector(Adversarial, selector)
}

func (m *MCTS[N]) SetActionSelector(selector Selector[N]) {
	m.actionSelector = selector
}

func (m *MCTS[N]) SetBackpropagator(backpropagator Backpropagator[N]) {
	m.backpropagator = backpropagator
}

// Simulations is the total number of completed simulations over all runs.
func (m *MCTS[N]) Simulations() int {
	return m.simulations
}

// Metric returns the metrics of the last run.
func (m *MCTS[N]) Metric() metrics.SearchMetric {
	return m.metric
}

// Run spends the budget and returns the number of simulations it executed.
func (m *MCTS[N]) Run(budget Budget) (int, error) {
	if budget.Simulations > 0 {
		return m.RunForSimulations(budget.Simulations)
	} else if budget.Duration > 0 {
		return m.RunFor(budget.Duration)
	}
	return 0, ErrNoBudget
}

// RunForSimulations executes exactly simulations cycles unless a tree
// invariant breaks.
func (m *MCTS[N]) RunForSimulations(simulations int) (int, error) {
	m.metrics.Start()
	done, err := m.iterate(simulations)
	m.complete(done)
	return done, err
}

// RunFor executes simulations until the duration has elapsed. The clock is
// checked after each simulation, so at least one always runs.
func (m *MCTS[N]) RunFor(duration time.Duration) (int, error) {
	m.metrics.Start()
	done, err := m.countdown(duration)
	m.complete(done)
	return done, err
}

func (m *MCTS[N]) iterate(simulations int) (int, error) {
	for i := 0; i < simulations; i++ {
		if err := m.simulate(); err != nil {
			return i, err
		}
	}
	return simulations, nil
}

func (m *MCTS[N]) countdown(duration time.Duration) (int, error) {
	start := time.Now()
	done := 0
	for {
		if err := m.simulate(); err != nil {
			return done, err
		}
		done++
		if time.Since(start) >= duration {
			return done, nil
		}
	}
}

func (m *MCTS[N]) simulate() error {
	m.root.Init()
	if err := m.playOneSequence(m.root); err != nil {
		return err
	}
	m.simulations++
	m.metrics.AddEpisode()
	return nil
}

func (m *MCTS[N]) complete(done int) {
	m.metric = m.metrics.Complete()
	m.logger.Debug().
		Int("simulations", done).
		Int("total_simulations", m.simulations).
		Dur("elapsed", m.metric.Duration).
		Msg("search completed")
}

func (m *MCTS[N]) playOneSequence(root N) error {
	path := []N{root}
	node := root
	rollout := false

	for depth := 1; ; depth++ {
		child, err := m.descend(node)
		if err != nil {
			return &TreeInvariantError{Depth: depth - 1, Err: err}
		}
		path = append(path, child)
		node = child

		if node.IsLeaf() {
			break
		}
		if !node.CanBeEvaluated() && m.config.DefaultPolicy && node.IsFirstTime() {
			rollout = true
			break
		}
		// depth counts edges from the root. Only evaluable states are cut, a
		// state that still needs expansion keeps going.
		if depth >= m.config.MaxTreeDepth && node.CanBeEvaluated() {
			break
		}
	}
	m.metrics.ObserveDepth(len(path) - 1)

	var reward Reward
	if rollout {
		reward = node.EvaluateDefaultPolicy()
		node.SetFirstTime(false)
		m.metrics.AddRollout()
	} else {
		reward = node.Evaluate()
	}

	if err := m.backpropagator.Backpropagate(path, reward); err != nil {
		return &TreeInvariantError{Depth: len(path) - 1, Err: err}
	}
	return nil
}

func (m *MCTS[N]) descend(node N) (N, error) {
	var none N
	children := node.Children()
	if len(children) == 0 {
		return none, ErrNoChildren
	}

	kind := children[0].Type()
	for _, child := range children[1:] {
		if child.Type() != kind {
			return none, ErrMixedChildTypes
		}
	}

	selector, ok := m.selectors[kind]
	if !ok || selector == nil {
		return none, fmt.Errorf("%w: %s", ErrNoSelector, kind)
	}
	child, err := selector.SelectChild(node)
	if err != nil {
		return none, err
	}
	if isNil(child) {
		return none, fmt.Errorf("%w: %s", ErrNoChildSelected, kind)
	}
	return child, nil
}

// isNil catches nil interfaces as well as typed nil pointers stored in N.
func isNil(node any) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// HighestScoringChild returns the recommended child of the root.
func (m *MCTS[N]) HighestScoringChild() (N, error) {
	return m.HighestScoringChildOf(m.root)
}

// HighestScoringChildOf applies the action selector to node. When no child
// has been visited the node itself is returned.
func (m *MCTS[N]) HighestScoringChildOf(node N) (N, error) {
	return m.actionSelector.SelectChild(node)
}
