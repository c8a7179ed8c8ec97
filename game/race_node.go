package game

import (
	"fmt"

	"golang.org/x/exp/rand"

	"mcts/searcher"
)

type raceTree struct {
	perspective int
	rng         *rand.Rand
	evaluate    Evaluate
}

// RaceNode is a search tree vertex over RaceState. Every node accumulates the
// reward of the searching player, so the opponent's moves are Adversarial
// children and dice outcomes are Stochastic children weighted by their
// probability. A roll is modelled as an intermediate chance node holding the
// state before the die is cast.
type RaceNode struct {
	state     RaceState
	move      RaceMove
	kind      searcher.NodeType
	chance    bool
	weight    float64
	parent    *RaceNode
	children  []*RaceNode
	expanded  bool
	firstTime bool
	stats     searcher.Statistics
	tree      *raceTree
}

// NewRaceTree returns the root of a search over state for perspective. The
// seed drives default-policy rollouts.
func NewRaceTree(state RaceState, perspective int, seed uint64) *RaceNode {
	return &RaceNode{
		state:     state,
		kind:      searcher.Deterministic,
		weight:    1,
		firstTime: true,
		tree: &raceTree{
			perspective: perspective,
			rng:         rand.New(rand.NewSource(seed)),
			evaluate:    EvaluateProgress,
		},
	}
}

func (n *RaceNode) newChild(state RaceState, move RaceMove, kind searcher.NodeType, chance bool, weight float64) *RaceNode {
	return &RaceNode{
		state:     state,
		move:      move,
		kind:      kind,
		chance:    chance,
		weight:    weight,
		parent:    n,
		firstTime: true,
		tree:      n.tree,
	}
}

func (n *RaceNode) Init() {}

func (n *RaceNode) Children() []*RaceNode {
	if n.expanded {
		return n.children
	}
	n.expanded = true

	if n.chance {
		for _, outcome := range n.state.Outcomes(n.move) {
			n.children = append(n.children,
				n.newChild(n.state.Apply(outcome.Advance), n.move, searcher.Stochastic, false, outcome.Probability))
		}
		return n.children
	}

	kind := searcher.Adversarial
	if n.state.Turn == n.tree.perspective {
		kind = searcher.Deterministic
	}
	for _, m := range n.state.LegalMoves() {
		move := m.(RaceMove)
		if move.IsStochastic() {
			n.children = append(n.children, n.newChild(n.state, move, kind, true, 1))
			continue
		}
		outcome := n.state.Outcomes(move)[0]
		n.children = append(n.children, n.newChild(n.state.Apply(outcome.Advance), move, kind, false, 1))
	}
	return n.children
}

func (n *RaceNode) Type() searcher.NodeType {
	return n.kind
}

func (n *RaceNode) Player() int {
	return n.tree.perspective
}

func (n *RaceNode) IsLeaf() bool {
	return !n.chance && n.state.Winner() != NoWinner
}

// CanBeEvaluated holds for finished races and for races the player to move
// wins by stepping.
func (n *RaceNode) CanBeEvaluated() bool {
	return !n.chance && (n.state.Winner() != NoWinner || n.state.Decided())
}

func (n *RaceNode) IsFirstTime() bool {
	return n.firstTime
}

func (n *RaceNode) SetFirstTime(firstTime bool) {
	n.firstTime = firstTime
}

// Evaluate is exact when CanBeEvaluated holds and a progress heuristic
// otherwise.
func (n *RaceNode) Evaluate() searcher.Reward {
	if winner := n.state.Winner(); winner != NoWinner {
		return winReward(winner)
	}
	if n.CanBeEvaluated() {
		return winReward(n.state.Turn)
	}
	reward := make(searcher.Reward, NumPlayers)
	for player := range reward {
		reward[player] = n.tree.evaluate(n.state, player)
	}
	return reward
}

// EvaluateDefaultPolicy plays uniformly random moves to the end of the race.
func (n *RaceNode) EvaluateDefaultPolicy() searcher.Reward {
	state := n.state
	if n.chance {
		state = state.Apply(n.sample(state.Outcomes(n.move)).Advance)
	}
	for state.Winner() == NoWinner {
		moves := state.LegalMoves()
		move := moves[n.tree.rng.Intn(len(moves))]
		state = state.Apply(n.sample(state.Outcomes(move)).Advance)
	}
	return winReward(state.Winner())
}

func (n *RaceNode) sample(outcomes []Outcome) Outcome {
	r := n.tree.rng.Float64()
	for _, outcome := range outcomes {
		if r < outcome.Probability {
			return outcome
		}
		r -= outcome.Probability
	}
	return outcomes[len(outcomes)-1]
}

func (n *RaceNode) Statistics() *searcher.Statistics {
	return &n.stats
}

func (n *RaceNode) Weight() float64 {
	return n.weight
}

// Move is the move that led to this node.
func (n *RaceNode) Move() RaceMove {
	return n.move
}

func (n *RaceNode) State() RaceState {
	return n.state
}

func (n *RaceNode) Parent() *RaceNode {
	return n.parent
}

func (n *RaceNode) String() string {
	return fmt.Sprintf("%s via %s %s", n.state, n.move, n.stats.String())
}

func winReward(winner int) searcher.Reward {
	reward := make(searcher.Reward, NumPlayers)
	reward[winner] = 1
	return reward
}
