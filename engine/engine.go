package engine

import (
	"golang.org/x/exp/rand"

	"mcts/experiments/metrics"
	"mcts/game"
)

const MaxTurns = 500

type Runner interface {
	// Run plays a game till there's a winner or the turn limit is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// sampleOutcome draws one of the outcomes by probability.
func sampleOutcome(rng *rand.Rand, outcomes []game.Outcome) game.Outcome {
	r := rng.Float64()
	for _, outcome := range outcomes {
		if r < outcome.Probability {
			return outcome
		}
		r -= outcome.Probability
	}
	return outcomes[len(outcomes)-1]
}
