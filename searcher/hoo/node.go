package hoo

import (
	"fmt"
	"math"
	"slices"

	"mcts/searcher"
)

// space is shared by every node of one tree.
type space struct {
	problem  Problem
	depthCap int
}

// Node is an axis-aligned box of the search domain. The lower bound of every
// dimension is inclusive and the upper bound exclusive, except on the
// domain's own upper boundary. A split halves the longest side, so the two
// children partition the parent's box without overlap.
type Node struct {
	min      []float64
	max      []float64
	depth    int
	id       string
	parent   *Node // non-owning, nil for the root
	children []*Node
	splitDim int
	space    *space

	stats    searcher.Statistics
	localMax float64 // best reward sampled inside the box
	bound    float64 // B-value
}

func newRoot(problem Problem, min, max []float64, depthCap int) *Node {
	return &Node{
		min:      slices.Clone(min),
		max:      slices.Clone(max),
		id:       "root",
		splitDim: -1,
		space:    &space{problem: problem, depthCap: depthCap},
		localMax: math.Inf(-1),
		bound:    math.Inf(1),
	}
}

func (n *Node) newChild(min, max []float64, side string) *Node {
	return &Node{
		min:      min,
		max:      max,
		depth:    n.depth + 1,
		id:       n.id + side,
		parent:   n,
		splitDim: -1,
		space:    n.space,
		localMax: math.Inf(-1),
		bound:    math.Inf(1),
	}
}

// Split creates the two children on first call. Later calls return the same
// children. Nodes at the depth cap are never split.
func (n *Node) Split() []*Node {
	if n.children != nil || !n.Expandable() {
		return n.children
	}

	dim := 0
	for d := range n.min {
		if n.max[d]-n.min[d] > n.max[dim]-n.min[dim] {
			dim = d
		}
	}
	mid := n.min[dim] + (n.max[dim]-n.min[dim])/2

	leftMax := slices.Clone(n.max)
	leftMax[dim] = mid
	rightMin := slices.Clone(n.min)
	rightMin[dim] = mid

	n.splitDim = dim
	n.children = []*Node{
		n.newChild(slices.Clone(n.min), leftMax, "L"),
		n.newChild(rightMin, slices.Clone(n.max), "R"),
	}
	return n.children
}

// route returns the existing child whose box holds point, or nil for a leaf.
func (n *Node) route(point []float64) *Node {
	if len(n.children) == 0 {
		return nil
	}
	if point[n.splitDim] < n.children[1].min[n.splitDim] {
		return n.children[0]
	}
	return n.children[1]
}

// Contains reports whether point lies in the closed box.
func (n *Node) Contains(point []float64) bool {
	if len(point) != len(n.min) {
		return false
	}
	for d, x := range point {
		if x < n.min[d] || x > n.max[d] {
			return false
		}
	}
	return true
}

// Sample is the point evaluated when the search stops at this node: the
// centre of the box.
func (n *Node) Sample() []float64 {
	centre := make([]float64, len(n.min))
	for d := range centre {
		centre[d] = n.min[d] + (n.max[d]-n.min[d])/2
	}
	return centre
}

func (n *Node) Min() []float64 {
	return slices.Clone(n.min)
}

func (n *Node) Max() []float64 {
	return slices.Clone(n.max)
}

func (n *Node) Depth() int {
	return n.depth
}

// ID is the path of L/R choices from the root, prefixed with "root".
func (n *Node) ID() string {
	return n.id
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) LocalMax() float64 {
	return n.localMax
}

func (n *Node) B() float64 {
	return n.bound
}

func (n *Node) Init() {}

// Expandable reports whether the box is above the depth cap and can still
// be split.
func (n *Node) Expandable() bool {
	return n.depth < n.space.depthCap
}

// Children returns the children of an already split box. Boxes grow one
// split per sample, in the backpropagator.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Type() searcher.NodeType {
	return searcher.Deterministic
}

func (n *Node) Player() int {
	return 0
}

func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

func (n *Node) CanBeEvaluated() bool {
	return true
}

func (n *Node) IsFirstTime() bool {
	return false
}

func (n *Node) SetFirstTime(bool) {}

func (n *Node) Evaluate() searcher.Reward {
	return searcher.Reward{n.space.problem.Evaluate(n.Sample())}
}

func (n *Node) EvaluateDefaultPolicy() searcher.Reward {
	return n.Evaluate()
}

func (n *Node) Statistics() *searcher.Statistics {
	return &n.stats
}

func (n *Node) String() string {
	return fmt.Sprintf("%s depth=%d min=%v max=%v %s", n.id, n.depth, n.min, n.max, n.stats.String())
}

// bestNode walks greedily from node to the visited child with the highest
// mean and stops when no child has been visited.
func bestNode(node *Node) *Node {
	for {
		var best *Node
		for _, child := range node.children {
			if child.stats.N() == 0 {
				continue
			}
			if best == nil || child.stats.Mean() > best.stats.Mean() {
				best = child
			}
		}
		if best == nil {
			return node
		}
		node = best
	}
}
