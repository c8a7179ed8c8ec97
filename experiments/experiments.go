package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mcts/engine"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"
	"mcts/searcher/agent"
)

const (
	NumGames       = 30 // Per match up
	NumSimulations = 200
)

// Experiment plays every matchup NumGames times, alternating the starting
// agent, and stores the records under Dir/Name.
type Experiment struct {
	Name     string
	Dir      string
	NumGames int
	Target   int
	Seed     uint64
	Configs  []metrics.AgentConfig
	MatchUps [][]metrics.AgentConfig
	Logger   zerolog.Logger
}

// ExplorationExperiment pairs a C=1 baseline against agents with other UCB
// exploration constants.
func ExplorationExperiment(dir string) *Experiment {
	baseline := metrics.AgentConfig{ID: 0, Exploration: 1, Simulations: NumSimulations, DefaultPolicy: true}
	configs := []metrics.AgentConfig{
		{ID: 1, Exploration: 0, Simulations: NumSimulations, DefaultPolicy: true},
		{ID: 2, Exploration: 0.5, Simulations: NumSimulations, DefaultPolicy: true},
		{ID: 3, Exploration: 2, Simulations: NumSimulations, DefaultPolicy: true},
		{ID: 4, Exploration: 4, Simulations: NumSimulations, DefaultPolicy: true},
	}
	return newExperiment("exploration", dir, baseline, configs)
}

// DefaultPolicyExperiment pairs a rollout agent against full-expansion
// agents with growing budgets.
func DefaultPolicyExperiment(dir string) *Experiment {
	baseline := metrics.AgentConfig{ID: 0, Exploration: 1, Simulations: NumSimulations, DefaultPolicy: true}
	configs := []metrics.AgentConfig{
		{ID: 1, Exploration: 1, Simulations: NumSimulations},
		{ID: 2, Exploration: 1, Simulations: 2 * NumSimulations},
		{ID: 3, Exploration: 1, Simulations: 4 * NumSimulations},
	}
	return newExperiment("default_policy", dir, baseline, configs)
}

func newExperiment(name, dir string, baseline metrics.AgentConfig, configs []metrics.AgentConfig) *Experiment {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return &Experiment{
		Name:     name,
		Dir:      dir,
		NumGames: NumGames,
		Target:   game.DefaultTarget,
		Seed:     uint64(time.Now().UnixNano()),
		Configs:  append(configs, baseline),
		MatchUps: matchUps,
		Logger:   log.Logger,
	}
}

// Run plays the experiment and returns the directory holding its records.
func (x *Experiment) Run() (string, error) {
	start := time.Now()
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	x.Logger.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchup := range x.MatchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		x.Logger.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(x.MatchUps), config1, config2)

		for i := 0; i < x.NumGames; i++ {
			count++
			agent1, agent2 := config1, config2
			if i%2 == 1 {
				agent1, agent2 = config2, config1
			}

			winner, gameMetric, moveMetrics, err := x.runGame(agent1, agent2, x.Seed+uint64(count))
			if err != nil {
				return "", fmt.Errorf("failed to run game %d: %w", count, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     agent1.ID,
				Agent2:     agent2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			x.Logger.Debug().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(x.MatchUps), i+1, winner)
		}
		x.Logger.Info().Msgf("completed matchup %d of %d", mi+1, len(x.MatchUps))
	}

	x.Logger.Info().Msgf("completed %s experiment", x.Name)
	return x.store(start, gameRecords, moveRecords)
}

func (x *Experiment) store(start time.Time, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(x.Dir, x.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	end := time.Now()
	if err := writer.WriteSetup(metrics.Setup{
		Name:      x.Name,
		NumGames:  x.NumGames,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}); err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(x.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	x.Logger.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	x.Logger.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	x.Logger.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame executes a single race between two agents and returns the winner
func (x *Experiment) runGame(config1, config2 metrics.AgentConfig, seed uint64) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := []agent.Agent{
		createAgent(config1, seed),
		createAgent(config2, seed+1),
	}
	e := engine.LocalEngine(agents, game.NewRace(x.Target), seed).WithLogger(x.Logger)
	return e.Run()
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	budget := searcher.Budget{Simulations: config.Simulations, Duration: config.Duration}
	options := []searcher.Option{
		searcher.WithDefaultPolicy(config.DefaultPolicy),
		searcher.WithMetrics(metrics.NewCollector()),
	}
	return agent.NewEvaluationAgent(budget, config.Exploration, seed, options...)
}
