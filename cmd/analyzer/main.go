// Package main provides the live analysis CLI: value bets on upcoming
// fixtures, review of logged predictions, season file updates and a
// scheduled mode running all three.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/footy-value/internal/config"
	"github.com/yourusername/footy-value/internal/datasource"
	"github.com/yourusername/footy-value/internal/health"
	"github.com/yourusername/footy-value/internal/logger"
	"github.com/yourusername/footy-value/internal/metrics"
	"github.com/yourusername/footy-value/internal/repository"
	"github.com/yourusername/footy-value/internal/scheduler"
	"github.com/yourusername/footy-value/internal/service"
	"github.com/yourusername/footy-value/internal/teams"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile   string
	metricsFile  string
	outputFormat string

	appLogger  *logrus.Logger
	cfg        *config.Config
	aliases    teams.Aliases
	repos      *repository.Repositories
	httpClient *datasource.RateLimitedHTTPClient
	feed       datasource.OddsFeed
	loader     *datasource.CSVMatchLoader
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write prometheus metrics to this textfile")

	analyzeCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format: text or json")

	rootCmd.AddCommand(analyzeCmd, reviewCmd, updateCmd, scheduleCmd)
}

var rootCmd = &cobra.Command{
	Use:     "analyzer",
	Short:   "Find value bets on upcoming fixtures",
	Long:    `Trains the Poisson model on the historical files and compares it with live bookmaker prices.`,
	Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if httpClient != nil {
			httpClient.Close()
		}
		return writeMetrics()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Predict upcoming fixtures and report value bets",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "text" && outputFormat != "json" {
			return fmt.Errorf("unknown format %q, want text or json", outputFormat)
		}
		return runAnalyze(cmd.Context())
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Settle pending predictions against recent scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd.Context())
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Append recent final scores to the current season files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.OddsAPI.ResultFiles) == 0 {
			return fmt.Errorf("odds_api.result_files is empty, nothing to update")
		}
		return runUpdate(cmd.Context())
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run update, review and analyze on their cron schedules",
	Long:  `Long-running mode: jobs follow the schedule section of the config and /health, /ready and /metrics are served on schedule.health_port.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchedule(cmd.Context())
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
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
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if !cfg.OddsAPIEnabled() {
		return fmt.Errorf("odds_api needs base_url, api_key and at least one league")
	}
	return nil
}

func setupDependencies() error {
	appLogger = logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	aliases = teams.DefaultAliases().With(cfg.Data.TeamAliases)

	var err error
	repos, err = repository.NewRepositories(cfg.Logs)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	httpClient = datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfigFrom(cfg.OddsAPI), appLogger)
	feed = datasource.NewOddsAPIClient(httpClient, cfg.OddsAPI, appLogger)
	loader = datasource.NewCSVMatchLoader(cfg.Data, aliases, appLogger)

	appLogger.WithFields(logrus.Fields{
		"feed":    feed.Name(),
		"leagues": cfg.OddsAPI.Leagues,
	}).Debug("Analyzer ready")
	return nil
}

func runAnalyze(ctx context.Context) error {
	history, err := loader.Load(ctx, cfg.Data.Files)
	if err != nil {
		return fmt.Errorf("failed to load match data: %w", err)
	}

	analyzer := service.NewAnalyzer(cfg, feed, repos.Predictions, aliases, appLogger)
	report, err := analyzer.Run(ctx, history)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if outputFormat == "json" {
		return service.WriteAnalysisJSON(os.Stdout, report)
	}
	fmt.Print(service.RenderAnalysis(report))
	return nil
}

func runReview(ctx context.Context) error {
	reviewer := service.NewReviewer(cfg, feed, repos.Predictions, aliases, appLogger)
	report, err := reviewer.Run(ctx)
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}
	fmt.Print(service.RenderReview(report))
	return nil
}

func runUpdate(ctx context.Context) error {
	updater := service.NewUpdater(cfg, feed, loader, aliases, appLogger)
	results, err := updater.Run(ctx)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Print(service.RenderUpdate(results))
	return nil
}

func runSchedule(ctx context.Context) error {
	sched := scheduler.NewScheduler(cfg.Schedule.JobTimeout, appLogger)

	if len(cfg.OddsAPI.ResultFiles) > 0 {
		if err := sched.Schedule("update", cfg.Schedule.UpdateCron, runUpdate); err != nil {
			return err
		}
	}
	if err := sched.Schedule("review", cfg.Schedule.ReviewCron, runReview); err != nil {
		return err
	}
	if err := sched.Schedule("analyze", cfg.Schedule.AnalyzeCron, runAnalyze); err != nil {
		return err
	}

	srv := health.NewServer(health.Config{
		ServiceName: "analyzer",
		Version:     Version,
		Commit:      GitCommit,
		Port:        cfg.Schedule.HealthPort,
		Logger:      appLogger,
		Registry:    metrics.GetRegistry(),
		Checks: []health.Checker{health.CheckFunc{Label: "odds_feed", Fn: func(context.Context) error {
			if httpClient.IsOpen() {
				return fmt.Errorf("circuit breaker open")
			}
			return nil
		}}},
		NextRun: sched.NextRun,
	})
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	if err := sched.Start(); err != nil {
		return err
	}
	srv.SetReady(true)
	appLogger.WithField("next_run", sched.NextRun().Format(time.RFC3339)).Info("Analyzer scheduled")

	<-ctx.Done()
	srv.SetReady(false)
	sched.Stop()
	return nil
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
