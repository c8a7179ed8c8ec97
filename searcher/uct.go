package searcher

import "math"

// UCB selects the child maximising mean + C*sqrt(ln(N)/n). Unvisited
// children come first, in insertion order, and ties keep the earliest child.
type UCB[N Node[N]] struct {
	Exploration float64
}

func NewUCB[N Node[N]](exploration float64) *UCB[N] {
	return &UCB[N]{Exploration: math.Max(0, exploration)}
}

func (u *UCB[N]) SelectChild(node N) (N, error) {
	return selectUCB(node, u.Exploration, 1)
}

// AdversarialUCB is UCB from the opponent's side: it minimises the mean the
// node statistics hold for the searching agent.
type AdversarialUCB[N Node[N]] struct {
	Exploration float64
}

func NewAdversarialUCB[N Node[N]](exploration float64) *AdversarialUCB[N] {
	return &AdversarialUCB[N]{Exploration: math.Max(0, exploration)}
}

func (u *AdversarialUCB[N]) SelectChild(node N) (N, error) {
	return selectUCB(node, u.Exploration, -1)
}

func selectUCB[N Node[N]](node N, exploration float64, sign float64) (N, error) {
	children := node.Children()
	if len(children) == 0 {
		var none N
		return none, ErrEmptySelection
	}

	policy := newUCT(exploration, node.Statistics().N())
	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range children {
		stats := child.Statistics()
		if stats.N() == 0 { // Prioritize unexplored nodes
			return child, nil
		}
		if score := policy.evaluate(sign*stats.Mean(), stats.N()); score > maxScore || maxIndex < 0 {
			maxScore = score
			maxIndex = i
		}
	}
	return children[maxIndex], nil
}
