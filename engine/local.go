package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher/agent"
)

// Engine referees a race between two agents and rolls the dice for them.
type Engine struct {
	State    game.RaceState
	Agents   []agent.Agent
	MaxTurns int
	rng      *rand.Rand
	logger   zerolog.Logger
}

var _ Runner = (*Engine)(nil)

func LocalEngine(agents []agent.Agent, state game.RaceState, seed uint64) *Engine {
	if len(agents) != game.NumPlayers {
		panic(fmt.Sprintf("need %d agents, got %d", game.NumPlayers, len(agents)))
	}
	return &Engine{
		State:    state,
		Agents:   agents,
		MaxTurns: MaxTurns,
		rng:      rand.New(rand.NewSource(seed)),
		logger:   log.Logger.With().Str("component", "engine").Logger(),
	}
}

func (e *Engine) WithLogger(logger zerolog.Logger) *Engine {
	e.logger = logger
	return e
}

// Run executes the entire game loop until a winner is found. The winner is
// game.NoWinner when the turn limit is hit.
func (e *Engine) Run() (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.State.Player(),
		Winner:         game.NoWinner,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	e.logger.Debug().Msgf("player %d is starting", e.State.Player())

	turn := 1
	for ; e.State.Winner() == game.NoWinner && turn <= e.MaxTurns; turn++ {
		player := e.State.Player()
		move, searchMetric, err := e.Agents[player].FindMove(e.State)
		if err != nil {
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("player %d failed on turn %d: %w", player, turn, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			SearchMetric: searchMetric,
		})

		outcome := sampleOutcome(e.rng, e.State.Outcomes(move))
		e.State = e.State.Play(move, outcome).(game.RaceState)
		e.logger.Debug().Msgf("turn %d: player %d played %s for %d, %s", turn, player, move, outcome.Advance, e.State)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = e.State.Winner()

	if gameMetric.Winner == game.NoWinner {
		e.logger.Warn().Msgf("stopped after %d turns without a winner", e.MaxTurns)
	} else {
		e.logger.Debug().Msgf("player %d won after %d moves", gameMetric.Winner, gameMetric.TotalMoves)
	}
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}
