package game

import (
	"fmt"

	"mcts/searcher"
)

// BanditNode is a one-step decision: the root holds arms with fixed rewards.
type BanditNode struct {
	name   string
	reward float64
	arms   []*BanditNode
	stats  searcher.Statistics
}

func NewBandit(rewards ...float64) *BanditNode {
	root := &BanditNode{name: "root"}
	for i, reward := range rewards {
		root.arms = append(root.arms, &BanditNode{name: fmt.Sprintf("arm%d", i), reward: reward})
	}
	return root
}

func (b *BanditNode) Init()                   {}
func (b *BanditNode) Children() []*BanditNode { return b.arms }
func (b *BanditNode) Type() searcher.NodeType { return searcher.Deterministic }
func (b *BanditNode) Player() int             { return 0 }
func (b *BanditNode) IsLeaf() bool            { return len(b.arms) == 0 }
func (b *BanditNode) CanBeEvaluated() bool    { return true }
func (b *BanditNode) IsFirstTime() bool       { return false }
func (b *BanditNode) SetFirstTime(bool)       {}

func (b *BanditNode) Evaluate() searcher.Reward {
	return searcher.Reward{b.reward}
}

func (b *BanditNode) EvaluateDefaultPolicy() searcher.Reward {
	return b.Evaluate()
}

func (b *BanditNode) Statistics() *searcher.Statistics {
	return &b.stats
}

func (b *BanditNode) Name() string {
	return b.name
}

func (b *BanditNode) Reward() float64 {
	return b.reward
}

func (b *BanditNode) Arms() []*BanditNode {
	return b.arms
}
