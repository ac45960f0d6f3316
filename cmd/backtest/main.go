// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/footy-value/internal/backtest"
	"github.com/yourusername/footy-value/internal/config"
	"github.com/yourusername/footy-value/internal/datasource"
	"github.com/yourusername/footy-value/internal/logger"
	"github.com/yourusername/footy-value/internal/metrics"
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/repository"
	"github.com/yourusername/footy-value/internal/teams"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile      string
	season          int
	bankroll        float64
	kellyMultiplier float64
	flatStake       float64
	minEdge         float64
	monteCarlo      int
	metricsFile     string
	betsFile        string

	appLogger *logrus.Logger
	cfg       *config.Config
	btConfig  backtest.BacktestConfig
	engine    *backtest.Engine
	matches   []models.Match
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	flags.IntVar(&season, "season", 0, "Season start year to simulate (default: latest in the data)")
	flags.Float64Var(&bankroll, "bankroll", 0, "Initial bankroll per league (default from config)")
	flags.Float64Var(&kellyMultiplier, "kelly-multiplier", 0, "Fraction of full Kelly to stake (default from config)")
	flags.Float64Var(&flatStake, "stake", 0, "Flat stake per bet (default from config)")
	flags.Float64Var(&minEdge, "min-edge", -1, "Minimum edge to place a bet (default from config)")
	flags.IntVar(&monteCarlo, "monte-carlo", 0, "Monte Carlo paths over the placed bets (0 disables)")
	flags.StringVar(&metricsFile, "metrics-file", "", "Write prometheus metrics to this textfile")
	flags.StringVar(&betsFile, "bets-file", "", "Export settled bets to this CSV file")

	rootCmd.AddCommand(accuracyCmd, kellyCmd, flatCmd, allCmd)
}

var rootCmd = &cobra.Command{
	Use:     "backtest",
	Short:   "Walk-forward backtests of the Poisson model",
	Long:    `Replays historical seasons to measure prediction accuracy and simulate Kelly and flat staking.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return writeMetrics()
	},
}

var accuracyCmd = &cobra.Command{
	Use:   "accuracy",
	Short: "Score the model's favourite on every candidate season",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAccuracy(cmd.Context())
	},
}

var kellyCmd = &cobra.Command{
	Use:   "kelly",
	Short: "Simulate fractional Kelly staking per league",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKelly(cmd.Context())
	},
}

var flatCmd = &cobra.Command{
	Use:   "flat",
	Short: "Simulate flat staking per league",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFlat(cmd.Context())
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the accuracy, Kelly and flat backtests in turn",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := runAccuracy(ctx); err != nil {
			return err
		}
		if err := runKelly(ctx); err != nil {
			return err
		}
		return runFlat(ctx)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLogger = logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	var err error
	btConfig, err = backtest.FromConfig(cfg)
	if err != nil {
		return err
	}
	applyOverrides()
	if err := btConfig.Validate(); err != nil {
		return err
	}

	repos, err := repository.NewRepositories(cfg.Logs)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	aliases := teams.DefaultAliases().With(cfg.Data.TeamAliases)
	engine, err = backtest.NewEngine(btConfig, aliases, appLogger, backtest.WithRepositories(repos))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	loader := datasource.NewCSVMatchLoader(cfg.Data, aliases, appLogger)
	matches, err = loader.Load(ctx, cfg.Data.Files)
	if err != nil {
		return fmt.Errorf("failed to load match data: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no historical matches found in %v: %w", cfg.Data.Files, models.ErrEmptyInput)
	}

	appLogger.WithFields(logrus.Fields{
		"matches": len(matches),
		"files":   len(cfg.Data.Files),
	}).Info("Historical data loaded")
	return nil
}

func applyOverrides() {
	if bankroll > 0 {
		btConfig.InitialBankroll = bankroll
	}
	if kellyMultiplier > 0 {
		btConfig.KellyMultiplier = kellyMultiplier
	}
	if flatStake > 0 {
		btConfig.FlatStake = flatStake
	}
	if minEdge >= 0 {
		btConfig.MinEdge = minEdge
	}
	if monteCarlo > 0 {
		btConfig.MonteCarloIterations = monteCarlo
	}
}

func runAccuracy(ctx context.Context) error {
	years, err := backtest.CandidateSeasons(matches)
	if err != nil {
		return err
	}
	report, err := engine.RunAccuracyBacktest(ctx, matches, years)
	if err != nil {
		return fmt.Errorf("accuracy backtest failed: %w", err)
	}
	fmt.Println(backtest.AccuracyConsoleReport(report))
	return nil
}

func runKelly(ctx context.Context) error {
	year, err := targetSeason()
	if err != nil {
		return err
	}
	report, err := engine.RunFinancialBacktest(ctx, matches, year, btConfig.InitialBankroll, btConfig.KellyMultiplier, btConfig.MinEdge)
	if err != nil {
		return fmt.Errorf("kelly backtest failed: %w", err)
	}
	return present(ctx, report)
}

func runFlat(ctx context.Context) error {
	year, err := targetSeason()
	if err != nil {
		return err
	}
	report, err := engine.RunFlatBacktest(ctx, matches, year, btConfig.InitialBankroll, btConfig.FlatStake, btConfig.MinEdge)
	if err != nil {
		return fmt.Errorf("flat backtest failed: %w", err)
	}
	return present(ctx, report)
}

func present(ctx context.Context, report backtest.FinancialReport) error {
	fmt.Println(backtest.FinancialConsoleReport(report))

	if betsFile != "" {
		if err := backtest.GenerateBetsCSV(report, betsFile); err != nil {
			return fmt.Errorf("failed to export bets: %w", err)
		}
		appLogger.WithField("path", betsFile).Info("Settled bets exported")
	}

	if !btConfig.RunsMonteCarlo(len(report.Bets)) {
		return nil
	}
	result, err := backtest.RunMonteCarlo(ctx, report.Bets, backtest.MonteCarloConfig{
		Iterations:      btConfig.MonteCarloIterations,
		Seed:            btConfig.MonteCarloSeed,
		InitialBankroll: btConfig.InitialBankroll,
	})
	if err != nil {
		return fmt.Errorf("monte carlo failed: %w", err)
	}
	fmt.Println(backtest.MonteCarloConsoleReport(result))
	return nil
}

// targetSeason is the --season flag, the configured season, or the latest
// candidate season in the data.
func targetSeason() (int, error) {
	if season > 0 {
		return season, nil
	}
	if cfg.Backtest.Season > 0 {
		return cfg.Backtest.Season, nil
	}
	years, err := backtest.CandidateSeasons(matches)
	if err != nil {
		return 0, err
	}
	return years[len(years)-1], nil
}

func writeMetrics() error {
	path := metricsFile
	if path == "" && cfg != nil && cfg.Metrics.Enabled {
		path = cfg.Metrics.TextfilePath
	}
	if path == "" {
		return nil
	}
	if err := metrics.WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
