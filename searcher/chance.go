package searcher

import "golang.org/x/exp/rand"

// ChanceProportional samples a child in proportion to its Weight, modelling
// the environment's own transition instead of exploiting rewards. Children
// that are not Weighted count as weight 1.
type ChanceProportional[N Node[N]] struct {
	rng *rand.Rand
}

func NewChanceProportional[N Node[N]](seed uint64) *ChanceProportional[N] {
	return &ChanceProportional[N]{rng: rand.New(rand.NewSource(seed))}
}

func (c *ChanceProportional[N]) SelectChild(node N) (N, error) {
	children := node.Children()
	if len(children) == 0 {
		var none N
		return none, ErrEmptySelection
	}

	weights := make([]float64, len(children))
	total := 0.0
	for i, child := range children {
		weights[i] = weight(child)
		total += weights[i]
	}
	if total <= 0 { // Degenerate weights, fall back to uniform
		return children[c.rng.Intn(len(children))], nil
	}

	sampled := c.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if sampled < cumulative {
			return children[i], nil
		}
	}
	// Rounding errors
	for i := len(children) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return children[i], nil
		}
	}
	return children[len(children)-1], nil
}

func weight(node any) float64 {
	w, ok := node.(Weighted)
	if !ok {
		return 1
	}
	if v := w.Weight(); v > 0 {
		return v
	}
	return 0
}
