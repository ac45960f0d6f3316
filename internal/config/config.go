// Package config provides configuration management for the footy-value tools.
package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Model    ModelConfig    `mapstructure:"model"`
	Backtest BacktestConfig `mapstructure:"backtest" validate:"required"`
	OddsAPI  OddsAPIConfig  `mapstructure:"odds_api"`
	Logs     LogsConfig     `mapstructure:"logs" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	AWS      AWSConfig      `mapstructure:"aws"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DataConfig lists the historical result files and name aliases
type DataConfig struct {
	Files       []string          `mapstructure:"files" validate:"required,min=1,dive,required"`
	TeamAliases map[string]string `mapstructure:"team_aliases"`
	RequireOdds bool              `mapstructure:"require_odds"`
	Encoding    string            `mapstructure:"encoding" validate:"omitempty,oneof=latin1 utf-8"`
}

// ModelConfig bounds the Poisson score grids
type ModelConfig struct {
	OutcomeMaxGoals int `mapstructure:"outcome_max_goals" validate:"gte=0,lte=15"`
	TotalsMaxGoals  int `mapstructure:"totals_max_goals" validate:"gte=0,lte=15"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	Season                  int           `mapstructure:"season" validate:"gte=0"`
	InitialBankroll         float64       `mapstructure:"initial_bankroll" validate:"required,gt=0"`
	KellyMultiplier         float64       `mapstructure:"kelly_multiplier" validate:"required,gt=0,lte=1"`
	MinEdge                 float64       `mapstructure:"min_edge" validate:"gte=0"`
	FlatStake               float64       `mapstructure:"flat_stake" validate:"required,gt=0"`
	HighConfidenceThreshold float64       `mapstructure:"high_confidence_threshold" validate:"required,gt=0,lt=1"`
	TrendBand               float64       `mapstructure:"trend_band" validate:"gte=0"`
	MaxOutcomeOdds          float64       `mapstructure:"max_outcome_odds" validate:"required,gt=1"`
	LegPolicy               string        `mapstructure:"leg_policy" validate:"required,legpolicy"`
	IncludeGoalMarkets      bool          `mapstructure:"include_goal_markets"`
	MonteCarloIterations    int           `mapstructure:"monte_carlo_iterations" validate:"gte=0"`
	MonteCarloSeed          int64         `mapstructure:"monte_carlo_seed"`
	StrengthCacheTTL        time.Duration `mapstructure:"strength_cache_ttl"`
}

// OddsAPIConfig configures the bookmaker odds feed
type OddsAPIConfig struct {
	BaseURL               string   `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey                string   `mapstructure:"api_key"`
	Leagues               []string `mapstructure:"leagues"`
	Regions               string   `mapstructure:"regions"`
	Markets               []string `mapstructure:"markets" validate:"omitempty,markets"`
	HoursAhead            int      `mapstructure:"hours_ahead" validate:"gte=0"`
	ScoresDaysFrom        int      `mapstructure:"scores_days_from" validate:"gte=0,lte=3"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" validate:"gte=0"`
	MaxRetries            int      `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit             float64  `mapstructure:"rate_limit" validate:"gte=0"`

	// ResultFiles maps a sport key to the season file its results are appended to
	ResultFiles map[string]string `mapstructure:"result_files"`
}

// LogsConfig points at the flat result logs
type LogsConfig struct {
	PerformanceLog string `mapstructure:"performance_log" validate:"required"`
	FinancialLog   string `mapstructure:"financial_log" validate:"required"`
	PredictionsLog string `mapstructure:"predictions_log" validate:"required"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path"`
}

// ScheduleConfig drives the long-running analyzer. Empty expressions
// disable a job.
type ScheduleConfig struct {
	AnalyzeCron string        `mapstructure:"analyze_cron"`
	ReviewCron  string        `mapstructure:"review_cron"`
	UpdateCron  string        `mapstructure:"update_cron"`
	JobTimeout  time.Duration `mapstructure:"job_timeout" validate:"gte=0"`
	HealthPort  string        `mapstructure:"health_port" validate:"omitempty,numeric"`
}

// AWSConfig locates the secret holding API credentials
type AWSConfig struct {
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// OddsAPIEnabled reports whether the odds feed can be queried.
func (c *Config) OddsAPIEnabled() bool {
	return c.OddsAPI.BaseURL != "" && c.OddsAPI.APIKey != "" && len(c.OddsAPI.Leagues) > 0
}

// UsesSecretsManager reports whether secrets should be pulled from AWS.
func (c *Config) UsesSecretsManager() bool {
	return c.AWS.SecretName != ""
}
