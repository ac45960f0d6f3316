// Package logger provides backtest-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for backtest runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger.
func NewBacktestLogger(baseLogger *logrus.Logger, runID string) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithFields(logrus.Fields{
			"component": "backtest",
			"run_id":    runID,
		}),
	}
}

// LogSeasonEvaluated logs one accuracy walk-forward step.
func (bl *BacktestLogger) LogSeasonEvaluated(season string, trainMatches, tested int, accuracy, hcAccuracy float64) {
	bl.WithFields(logrus.Fields{
		"season":        season,
		"train_matches": trainMatches,
		"tested":        tested,
		"accuracy":      accuracy,
		"hc_accuracy":   hcAccuracy,
	}).Info("Season evaluated")
}

// LogSeasonSkipped logs a season that could not be evaluated.
func (bl *BacktestLogger) LogSeasonSkipped(season, reason string) {
	bl.WithFields(logrus.Fields{
		"season": season,
		"reason": reason,
	}).Warn("Season skipped")
}

// LogBetPlaced logs a simulated bet and its settlement.
func (bl *BacktestLogger) LogBetPlaced(league, fixture, market string, odds, probability, stake, bankroll float64, won bool) {
	bl.WithFields(logrus.Fields{
		"league":      league,
		"fixture":     fixture,
		"market":      market,
		"odds":        odds,
		"probability": probability,
		"stake":       stake,
		"won":         won,
		"bankroll":    bankroll,
	}).Debug("Simulated bet settled")
}

// LogLeagueSettled logs the final bankroll of one league simulation.
func (bl *BacktestLogger) LogLeagueSettled(strategy, season, league string, finalBankroll, roi float64, betsPlaced int) {
	bl.WithFields(logrus.Fields{
		"strategy":       strategy,
		"season":         season,
		"league":         league,
		"final_bankroll": finalBankroll,
		"roi_percent":    roi,
		"bets_placed":    betsPlaced,
	}).Info("League simulation complete")
}
