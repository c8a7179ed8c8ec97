package agent

import (
	"fmt"
	"slices"

	"golang.org/x/exp/rand"

	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"
)

type evaluationAgent struct {
	budget      searcher.Budget
	exploration float64
	options     []searcher.Option
	rng         *rand.Rand
}

// NewEvaluationAgent returns an agent that searches every move from scratch
// with the given budget and UCB exploration constant. The seed drives the
// per-move search seeds.
func NewEvaluationAgent(budget searcher.Budget, exploration float64, seed uint64, options ...searcher.Option) Agent {
	return &evaluationAgent{
		budget:      budget,
		exploration: exploration,
		options:     options,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *evaluationAgent) FindMove(state game.RaceState) (game.RaceMove, metrics.SearchMetric, error) {
	seed := a.rng.Uint64()
	root := game.NewRaceTree(state, state.Player(), seed)
	options := append(slices.Clone(a.options), searcher.WithSeed(seed))

	mcts := searcher.NewMCTS(root, options...)
	mcts.SetDeterministicNodeSelector(searcher.NewUCB[*game.RaceNode](a.exploration))
	mcts.SetAdversarialNodeSelector(searcher.NewAdversarialUCB[*game.RaceNode](a.exploration))

	if _, err := mcts.Run(a.budget); err != nil {
		return game.Step, mcts.Metric(), fmt.Errorf("failed to search: %w", err)
	}

	best, err := mcts.HighestScoringChild()
	if err != nil {
		return game.Step, mcts.Metric(), fmt.Errorf("failed to select move: %w", err)
	}
	if best == root {
		return game.Step, mcts.Metric(), nil
	}
	return best.Move(), mcts.Metric(), nil
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that picks legal moves uniformly.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.RaceState) (game.RaceMove, metrics.SearchMetric, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Step, metrics.SearchMetric{}, fmt.Errorf("no legal moves in %s", state)
	}
	return moves[a.rng.Intn(len(moves))].(game.RaceMove), metrics.SearchMetric{}, nil
}
