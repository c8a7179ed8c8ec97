package searcher

import "fmt"

// NodeType tags how a node is reached from its parent. The engine picks the
// selector for a descent step from the type of the parent's children.
type NodeType int

const (
	Deterministic NodeType = iota // the searching agent chooses
	Stochastic                    // the environment chooses (dice, transitions)
	Adversarial                   // an opponent chooses
)

func (t NodeType) String() string {
	switch t {
	case Deterministic:
		return "deterministic"
	case Stochastic:
		return "stochastic"
	case Adversarial:
		return "adversarial"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Reward holds one value per player or objective.
type Reward []float64

// Node is the capability a domain collaborator exposes to the engine. N is the
// concrete node type, so selectors and backpropagators work on the caller's
// own nodes without type assertions.
//
// A node owns its children. Children must be returned in the same order on
// every call and must all share the same NodeType.
type Node[N any] interface {
	// Init re-arms per-simulation transient state. Called on the root before
	// every simulation.
	Init()
	// Children expands the node on first call if needed.
	Children() []N
	Type() NodeType
	// Player is the index of the reward component accumulated in this
	// node's statistics.
	Player() int

	IsLeaf() bool
	// CanBeEvaluated reports whether Evaluate gives an exact value here, as
	// opposed to needing a default-policy rollout.
	CanBeEvaluated() bool
	IsFirstTime() bool
	SetFirstTime(firstTime bool)

	Evaluate() Reward
	EvaluateDefaultPolicy() Reward

	Statistics() *Statistics
}

// Weighted is implemented by stochastic children that carry a transition
// probability (or any non-negative weight).
type Weighted interface {
	Weight() float64
}
