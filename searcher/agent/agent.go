package agent

import (
	"mcts/experiments/metrics"
	"mcts/game"
)

type Agent interface {
	// FindMove returns a move and performance metrics (if collected) from the search process
	FindMove(state game.RaceState) (game.RaceMove, metrics.SearchMetric, error)
}
