package searcher

import "fmt"

// MeanBackpropagator adds one visit and reward[node.Player()] to every node
// on the path.
type MeanBackpropagator[N Node[N]] struct{}

func NewMeanBackpropagator[N Node[N]]() *MeanBackpropagator[N] {
	return &MeanBackpropagator[N]{}
}

func (b *MeanBackpropagator[N]) Backpropagate(path []N, reward Reward) error {
	// Validate the whole path first so a bad node leaves no partial update
	for _, node := range path {
		if p := node.Player(); p < 0 || p >= len(reward) {
			return fmt.Errorf("%w: player %d, %d rewards", ErrRewardIndex, p, len(reward))
		}
	}
	for i := len(path) - 1; i >= 0; i-- {
		node := path[i]
		node.Statistics().Add(reward[node.Player()])
	}
	return nil
}
