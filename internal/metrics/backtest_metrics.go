// Package metrics defines backtesting-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by mode and status",
	}, []string{"mode", "status"})
	MatchesEvaluatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "backtest_matches_evaluated_total",
		Help:      "Total number of test matches predicted by mode",
	}, []string{"mode"})
	MatchesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "backtest_matches_skipped_total",
		Help:      "Total number of test matches skipped by reason",
	}, []string{"reason"})
	BacktestBetsPlacedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "backtest_bets_placed_total",
		Help:      "Total number of simulated bets by strategy and market",
	}, []string{"strategy", "market"})
	StrengthCacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "strength_cache_lookups_total",
		Help:      "Strength table cache lookups by result",
	}, []string{"result"})
)

// Backtest gauge vectors
var (
	SeasonAccuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "backtest_season_accuracy_percent",
		Help:      "Outcome accuracy per tested season",
	}, []string{"season", "subset"})
	LeagueFinalBankroll = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "backtest_final_bankroll",
		Help:      "Final simulated bankroll per league and strategy",
	}, []string{"strategy", "season", "league"})
	LeagueROI = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "backtest_roi_percent",
		Help:      "Simulated return on stakes per league and strategy",
	}, []string{"strategy", "season", "league"})
)

// Backtest histograms
var (
	BacktestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	}, []string{"mode"})
)

// RecordBacktestRun records a backtest run event.
// mode should be one of: "accuracy", "kelly", "flat"
// status should be one of: "success", "failure"
func RecordBacktestRun(mode, status string, durationSeconds float64) {
	BacktestRunsTotal.WithLabelValues(mode, status).Inc()
	BacktestDuration.WithLabelValues(mode).Observe(durationSeconds)
}

// RecordMatchEvaluated records a predicted test match.
func RecordMatchEvaluated(mode string) {
	MatchesEvaluatedTotal.WithLabelValues(mode).Inc()
}

// RecordMatchSkipped records a test match that could not be predicted.
func RecordMatchSkipped(reason string) {
	MatchesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordBacktestBet records a simulated bet.
func RecordBacktestBet(strategy, market string) {
	BacktestBetsPlacedTotal.WithLabelValues(strategy, market).Inc()
}

// RecordStrengthCacheLookup records a strength table cache hit or miss.
func RecordStrengthCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	StrengthCacheLookupsTotal.WithLabelValues(result).Inc()
}

// UpdateSeasonAccuracy sets the accuracy gauges for a season.
func UpdateSeasonAccuracy(season string, accuracy, hcAccuracy float64) {
	SeasonAccuracy.WithLabelValues(season, "all").Set(accuracy)
	SeasonAccuracy.WithLabelValues(season, "high_confidence").Set(hcAccuracy)
}

// UpdateLeagueResult sets the bankroll and ROI gauges for a league.
func UpdateLeagueResult(strategy, season, league string, finalBankroll, roi float64) {
	LeagueFinalBankroll.WithLabelValues(strategy, season, league).Set(finalBankroll)
	LeagueROI.WithLabelValues(strategy, season, league).Set(roi)
}
