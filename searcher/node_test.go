package searcher

// mockNode is a hand-built tree node. A node is a leaf only when leaf is set,
// so a node without children and without the flag breaks the expansion
// contract on purpose.
type mockNode struct {
	name      string
	kind      NodeType
	player    int
	children  []*mockNode
	leaf      bool
	exact     bool
	firstTime bool
	reward    Reward
	rollout   Reward
	weight    float64
	stats     Statistics

	inits       int
	evaluations int
	rollouts    int
}

func (m *mockNode) Init()                   { m.inits++ }
func (m *mockNode) Children() []*mockNode   { return m.children }
func (m *mockNode) Type() NodeType          { return m.kind }
func (m *mockNode) Player() int             { return m.player }
func (m *mockNode) IsLeaf() bool            { return m.leaf }
func (m *mockNode) CanBeEvaluated() bool    { return m.exact }
func (m *mockNode) IsFirstTime() bool       { return m.firstTime }
func (m *mockNode) SetFirstTime(first bool) { m.firstTime = first }
func (m *mockNode) Statistics() *Statistics { return &m.stats }
func (m *mockNode) Weight() float64         { return m.weight }

func (m *mockNode) Evaluate() Reward {
	m.evaluations++
	return m.reward
}

func (m *mockNode) EvaluateDefaultPolicy() Reward {
	m.rollouts++
	return m.rollout
}

func leafNode(name string, reward float64) *mockNode {
	return &mockNode{name: name, leaf: true, exact: true, reward: Reward{reward}}
}

// innerNode is an exactly evaluable decision point.
func innerNode(name string, children ...*mockNode) *mockNode {
	return &mockNode{name: name, exact: true, reward: Reward{0}, children: children}
}

func visit(node *mockNode, rewards ...float64) *mockNode {
	for _, r := range rewards {
		node.stats.Add(r)
	}
	return node
}

func visits(nodes ...*mockNode) int {
	total := 0
	for _, node := range nodes {
		total += node.stats.N()
	}
	return total
}
