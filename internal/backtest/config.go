package backtest

import (
	"fmt"
	"time"

	"github.com/yourusername/footy-value/internal/config"
	"github.com/yourusername/footy-value/internal/strategy"
)

// BacktestConfig extends core config with backtest-specific settings
type BacktestConfig struct {
	InitialBankroll         float64
	KellyMultiplier         float64
	MinEdge                 float64
	FlatStake               float64
	HighConfidenceThreshold float64
	TrendBand               float64
	MaxOutcomeOdds          float64
	LegPolicy               strategy.LegPolicy
	IncludeGoalMarkets      bool
	OutcomeMaxGoals         int
	TotalsMaxGoals          int
	MonteCarloIterations    int
	MonteCarloSeed          int64
	StrengthCacheTTL        time.Duration
}

// DefaultBacktestConfig returns the settings used when nothing is configured.
func DefaultBacktestConfig() BacktestConfig {
	return BacktestConfig{
		InitialBankroll:         100,
		KellyMultiplier:         0.5,
		MinEdge:                 0.05,
		FlatStake:               1,
		HighConfidenceThreshold: 0.55,
		TrendBand:               1.0,
		MaxOutcomeOdds:          strategy.DefaultMaxOutcomeOdds,
		LegPolicy:               strategy.LegPolicyFirst,
		MonteCarloIterations:    1000,
		StrengthCacheTTL:        10 * time.Minute,
	}
}

// FromConfig converts app config to backtest config
func FromConfig(cfg *config.Config) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("backtest config is required")
	}
	b := cfg.Backtest

	bt := BacktestConfig{
		InitialBankroll:         b.InitialBankroll,
		KellyMultiplier:         b.KellyMultiplier,
		MinEdge:                 b.MinEdge,
		FlatStake:               b.FlatStake,
		HighConfidenceThreshold: b.HighConfidenceThreshold,
		TrendBand:               b.TrendBand,
		MaxOutcomeOdds:          b.MaxOutcomeOdds,
		LegPolicy:               strategy.LegPolicy(b.LegPolicy),
		IncludeGoalMarkets:      b.IncludeGoalMarkets,
		OutcomeMaxGoals:         cfg.Model.OutcomeMaxGoals,
		TotalsMaxGoals:          cfg.Model.TotalsMaxGoals,
		MonteCarloIterations:    b.MonteCarloIterations,
		MonteCarloSeed:          b.MonteCarloSeed,
		StrengthCacheTTL:        b.StrengthCacheTTL,
	}
	if bt.LegPolicy == "" {
		bt.LegPolicy = strategy.LegPolicyFirst
	}

	return bt, bt.Validate()
}

// RunsMonteCarlo reports whether settled bets should be resampled.
func (b BacktestConfig) RunsMonteCarlo(settledBets int) bool {
	return b.MonteCarloIterations > 0 && settledBets > 0
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if b.InitialBankroll <= 0 {
		return fmt.Errorf("initial bankroll must be positive")
	}
	if b.KellyMultiplier <= 0 || b.KellyMultiplier > 1 {
		return fmt.Errorf("kelly multiplier must be in (0, 1]")
	}
	if b.MinEdge < 0 {
		return fmt.Errorf("min edge cannot be negative")
	}
	if b.FlatStake <= 0 {
		return fmt.Errorf("flat stake must be positive")
	}
	if b.HighConfidenceThreshold <= 0 || b.HighConfidenceThreshold >= 1 {
		return fmt.Errorf("high confidence threshold must be in (0, 1)")
	}
	if b.TrendBand < 0 {
		return fmt.Errorf("trend band cannot be negative")
	}
	if b.MaxOutcomeOdds <= 1 {
		return fmt.Errorf("max outcome odds must be greater than 1")
	}
	if b.LegPolicy != strategy.LegPolicyFirst && b.LegPolicy != strategy.LegPolicyAll {
		return fmt.Errorf("unknown leg policy %q", b.LegPolicy)
	}
	if b.MonteCarloIterations < 0 {
		return fmt.Errorf("monte carlo iterations cannot be negative")
	}
	return nil
}
