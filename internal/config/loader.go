// Package config provides configuration management for the footy-value tools.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "FOOTY_VALUE"

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "footy-value")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("data.encoding", "latin1")

	v.SetDefault("model.outcome_max_goals", 5)
	v.SetDefault("model.totals_max_goals", 6)

	v.SetDefault("backtest.initial_bankroll", 100.0)
	v.SetDefault("backtest.kelly_multiplier", 0.5)
	v.SetDefault("backtest.min_edge", 0.05)
	v.SetDefault("backtest.flat_stake", 1.0)
	v.SetDefault("backtest.high_confidence_threshold", 0.55)
	v.SetDefault("backtest.trend_band", 1.0)
	v.SetDefault("backtest.max_outcome_odds", 25.0)
	v.SetDefault("backtest.leg_policy", "first")
	v.SetDefault("backtest.monte_carlo_iterations", 0)
	v.SetDefault("backtest.strength_cache_ttl", "10m")

	v.SetDefault("odds_api.base_url", "https://api.the-odds-api.com/v4")
	v.SetDefault("odds_api.regions", "eu")
	v.SetDefault("odds_api.markets", []string{"h2h", "totals"})
	v.SetDefault("odds_api.hours_ahead", 72)
	v.SetDefault("odds_api.scores_days_from", 3)
	v.SetDefault("odds_api.request_timeout_seconds", 30)
	v.SetDefault("odds_api.max_retries", 3)
	v.SetDefault("odds_api.rate_limit", 1.0)

	v.SetDefault("logs.performance_log", "performance_log.csv")
	v.SetDefault("logs.financial_log", "financial_log.csv")
	v.SetDefault("logs.predictions_log", "predictions_log.csv")

	v.SetDefault("metrics.enabled", true)

	v.SetDefault("schedule.analyze_cron", "0 9 * * *")
	v.SetDefault("schedule.review_cron", "0 7 * * *")
	v.SetDefault("schedule.update_cron", "30 6 * * *")
	v.SetDefault("schedule.job_timeout", "10m")
	v.SetDefault("schedule.health_port", "8080")
}
