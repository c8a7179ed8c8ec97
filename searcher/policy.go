package searcher

import "math"

// Selector picks the child of node to descend into, or to recommend.
type Selector[N Node[N]] interface {
	SelectChild(node N) (N, error)
}

// Backpropagator folds a simulation reward into the statistics of every
// node on the root-to-leaf path.
type Backpropagator[N Node[N]] interface {
	Backpropagate(path []N, reward Reward) error
}

type uct struct {
	exploration float64
	lnN         float64
}

func newUCT(exploration float64, N int) uct {
	if N < 1 { // A parent is visited before its children, clamp to ln(1) = 0
		N = 1
	}
	return uct{exploration: exploration, lnN: math.Log(float64(N))}
}

func (u uct) evaluate(mean float64, n int) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = mean + C*sqrt(ln(N)/n)
	return mean + u.exploration*math.Sqrt(u.lnN/float64(n))
}
