package hoo

import (
	"math"

	"mcts/searcher"
)

// DepthCap bounds the tree depth for a budget of iterations:
// floor(1.5*H) with H = ceil(ln(iterations) / (2*ln(1/gamma))), at least 1.
func DepthCap(gamma float64, iterations int) int {
	if iterations < 1 || gamma <= 0 || gamma >= 1 {
		return 1
	}
	h := math.Ceil(math.Log(float64(iterations)) / (2 * math.Log(1/gamma)))
	return max(1, int(math.Floor(1.5*h)))
}

// BSelector descends into the child with the larger B-value. Ties keep the
// left child.
//
//	U(node) = max(mean + sqrt(2 ln t / N) + nu*gamma^depth, localMax), +inf when N = 0
//	B(node) = min(U(node), max B(children))
type BSelector struct {
	gamma    float64
	nu       float64
	depthCap int
}

func NewBSelector(gamma, nu float64, depthCap int) *BSelector {
	return &BSelector{gamma: gamma, nu: nu, depthCap: depthCap}
}

func (s *BSelector) SelectChild(node *Node) (*Node, error) {
	children := node.Children()
	if len(children) == 0 {
		return nil, searcher.ErrEmptySelection
	}

	best := children[0]
	for _, child := range children[1:] {
		if child.bound > best.bound {
			best = child
		}
	}
	return best, nil
}

// Slack is the box diameter term nu*gamma^depth. It is non-increasing in
// depth for gamma in (0, 1).
func (s *BSelector) Slack(depth int) float64 {
	return s.nu * math.Pow(s.gamma, float64(depth))
}

// Upper is U(node) after t samples.
func (s *BSelector) Upper(node *Node, t int) float64 {
	n := node.stats.N()
	if n == 0 {
		return math.Inf(1)
	}
	confidence := math.Sqrt(2 * math.Log(float64(max(t, 1))) / float64(n))
	return math.Max(node.stats.Mean()+confidence+s.Slack(node.depth), node.localMax)
}

// Refresh recomputes B bottom-up for the subtree under node after t samples
// and returns B(node).
func (s *BSelector) Refresh(node *Node, t int) float64 {
	upper := s.Upper(node, t)
	if len(node.children) == 0 {
		node.bound = upper
		return upper
	}

	best := math.Inf(-1)
	for _, child := range node.children {
		best = math.Max(best, s.Refresh(child, t))
	}
	node.bound = math.Min(upper, best)
	return node.bound
}

func (s *BSelector) MaxDepth() int {
	return s.depthCap
}
