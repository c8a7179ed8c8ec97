package searcher

import "math"

// ActionSelector recommends the visited child with the highest mean. If no
// child has been visited there is nothing informative to recommend and the
// node itself is returned.
type ActionSelector[N Node[N]] struct{}

func NewActionSelector[N Node[N]]() *ActionSelector[N] {
	return &ActionSelector[N]{}
}

func (a *ActionSelector[N]) SelectChild(node N) (N, error) {
	children := node.Children()
	if len(children) == 0 {
		var none N
		return none, ErrEmptySelection
	}

	best := -1
	bestMean := math.Inf(-1)
	for i, child := range children {
		stats := child.Statistics()
		if stats.N() == 0 {
			continue
		}
		if best < 0 || stats.Mean() > bestMean {
			best = i
			bestMean = stats.Mean()
		}
	}
	if best < 0 {
		return node, nil
	}
	return children[best], nil
}
