package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mcts/config"
	"mcts/engine"
	"mcts/experiments"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"
	"mcts/searcher/agent"
	"mcts/searcher/hoo"
)

var (
	cfg        config.Config
	configPath string
	registry   *prometheus.Registry

	rootCmd = &cobra.Command{
		Use:   "mcts",
		Short: "Monte Carlo tree search and HOO optimisation",
		Long: `Runs the generic tree search on bandits and dice races, and the
hierarchical optimistic optimiser on continuous benchmark problems.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	optimiseCmd = &cobra.Command{
		Use:   "optimise",
		Short: "Maximises the configured benchmark problem with HOO",
		Args:  cobra.NoArgs,
		RunE:  runOptimise,
	}
	replayCmd = &cobra.Command{
		Use:   "replay [samples.csv]",
		Short: "Rebuilds the HOO tree from a recorded sample history",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	banditCmd = &cobra.Command{
		Use:   "bandit",
		Short: "Searches a one-level bandit and prints the recommended arm",
		Args:  cobra.NoArgs,
		RunE:  runBandit,
	}
	raceCmd = &cobra.Command{
		Use:   "race",
		Short: "Plays one dice race between a search agent and an opponent",
		Args:  cobra.NoArgs,
		RunE:  runRace,
	}
	experimentCmd = &cobra.Command{
		Use:       "experiment [exploration|default_policy]",
		Short:     "Runs a tournament of agent configurations and stores the records",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"exploration", "default_policy"},
		RunE:      runExperiment,
	}

	banditRewards string
	opponent      string
	numGames      int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML or JSON config file")

	banditCmd.Flags().StringVar(&banditRewards, "rewards", "0.1,0.9,0.5", "comma separated arm rewards")
	raceCmd.Flags().StringVar(&opponent, "opponent", "random", "opponent agent: random or search")
	experimentCmd.Flags().IntVar(&numGames, "games", experiments.NumGames, "games per match up")

	rootCmd.AddCommand(optimiseCmd, replayCmd, banditCmd, raceCmd, experimentCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(cfg.Level())
	return nil
}

// searchOptions appends a prometheus collector when metrics are enabled. Only
// one collector can be registered per process.
func searchOptions() ([]searcher.Option, error) {
	options := cfg.Search.Options()
	if !cfg.Metrics {
		return options, nil
	}
	registry = prometheus.NewRegistry()
	collector, err := metrics.NewPrometheusCollector(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return append(options, searcher.WithMetrics(collector)), nil
}

func dumpMetrics() error {
	if registry == nil {
		return nil
	}
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, family); err != nil {
			return err
		}
	}
	return nil
}

func runOptimise(cmd *cobra.Command, args []string) error {
	problem, err := hoo.NewProblem(cfg.HOO.Problem, cfg.HOO.Dimension)
	if err != nil {
		return err
	}
	options, err := searchOptions()
	if err != nil {
		return err
	}
	optimiser, err := hoo.NewOptimiser(problem, cfg.HOO.Settings(), options...)
	if err != nil {
		return err
	}

	if _, err := optimiser.Optimise(); err != nil {
		return err
	}
	best := optimiser.BestNode()
	fmt.Printf("best node:   %s\n", best)
	fmt.Printf("best value:  %g\n", optimiser.BestValue())
	fmt.Printf("best sample: %v\n", optimiser.BestSample())

	writer, err := metrics.NewWriter(cfg.OutputDir, "hoo")
	if err != nil {
		return err
	}
	path, err := writer.WriteSamples(optimiser.Samples(), optimiser.Rewards())
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Str("run_id", writer.RunID()).Msg("samples written")
	return dumpMetrics()
}

func runReplay(cmd *cobra.Command, args []string) error {
	samples, rewards, err := metrics.ReadSamples(args[0])
	if err != nil {
		return err
	}

	settings := cfg.HOO.Settings()
	lower := make([]float64, settings.Dimension)
	upper := make([]float64, settings.Dimension)
	for d := range lower {
		lower[d] = settings.Min
		upper[d] = settings.Max
	}
	replayer := hoo.NewReplayer(lower, upper, hoo.DepthCap(settings.Gamma, settings.Iterations))

	result, err := replayer.Replay(samples, rewards)
	if err != nil {
		return err
	}
	fmt.Printf("samples:     %d\n", len(result.Trajectory))
	fmt.Printf("best node:   %s\n", result.BestNode)
	fmt.Printf("best value:  %g\n", result.BestValue)
	fmt.Printf("best sample: %v\n", result.BestSample)
	return nil
}

func runBandit(cmd *cobra.Command, args []string) error {
	var rewards []float64
	for _, field := range strings.Split(banditRewards, ",") {
		reward, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return fmt.Errorf("invalid reward %q: %w", field, err)
		}
		rewards = append(rewards, reward)
	}

	options, err := searchOptions()
	if err != nil {
		return err
	}
	root := game.NewBandit(rewards...)
	mcts := searcher.NewMCTS(root, options...)
	mcts.SetDeterministicNodeSelector(searcher.NewUCB[*game.BanditNode](cfg.Search.Exploration))

	done, err := mcts.Run(cfg.Search.Budget())
	if err != nil {
		return err
	}
	best, err := mcts.HighestScoringChild()
	if err != nil {
		return err
	}
	fmt.Printf("simulations: %d\n", done)
	for _, arm := range root.Arms() {
		fmt.Printf("  %s reward=%g %s\n", arm.Name(), arm.Reward(), arm.Statistics())
	}
	fmt.Printf("recommended: %s\n", best.Name())
	return dumpMetrics()
}

func runRace(cmd *cobra.Command, args []string) error {
	options, err := searchOptions()
	if err != nil {
		return err
	}
	seed := cfg.Search.Seed
	search := agent.NewEvaluationAgent(cfg.Search.Budget(), cfg.Search.Exploration, seed, options...)

	var other agent.Agent
	switch opponent {
	case "random":
		other = agent.NewRandomAgent(seed + 1)
	case "search":
		other = agent.NewEvaluationAgent(cfg.Search.Budget(), cfg.Search.Exploration, seed+1, options...)
	default:
		return fmt.Errorf("unknown opponent %q", opponent)
	}

	e := engine.LocalEngine([]agent.Agent{search, other}, game.NewRace(cfg.Race.Target), seed+2)
	winner, gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}
	fmt.Printf("final state: %s\n", e.State)
	fmt.Printf("winner:      %d after %d moves in %s\n", winner, gameMetric.TotalMoves, gameMetric.Duration)
	return dumpMetrics()
}

func runExperiment(cmd *cobra.Command, args []string) error {
	var x *experiments.Experiment
	switch args[0] {
	case "exploration":
		x = experiments.ExplorationExperiment(cfg.OutputDir)
	case "default_policy":
		x = experiments.DefaultPolicyExperiment(cfg.OutputDir)
	default:
		return fmt.Errorf("unknown experiment %q", args[0])
	}
	x.NumGames = numGames
	x.Target = cfg.Race.Target
	if cfg.Search.Seed != 0 {
		x.Seed = cfg.Search.Seed
	}

	dir, err := x.Run()
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("experiment stored")
	return nil
}
