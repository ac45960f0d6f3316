// Package logger provides logging for live fixture analysis and reviews.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger logs fixture analysis and prediction review events.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogFixtureAnalysed logs a fixture prediction and the value found.
func (al *AnalysisLogger) LogFixtureAnalysed(league, homeTeam, awayTeam, favourite string, confidence float64, valueBets int) {
	al.WithFields(logrus.Fields{
		"league":     league,
		"home_team":  homeTeam,
		"away_team":  awayTeam,
		"favourite":  favourite,
		"confidence": confidence,
		"value_bets": valueBets,
		"event_type": "fixture_analysed",
	}).Info("Fixture analysed")
}

// LogUnresolvedFixture logs a fixture whose teams are missing from the model.
func (al *AnalysisLogger) LogUnresolvedFixture(league, homeTeam, awayTeam string) {
	al.WithFields(logrus.Fields{
		"league":     league,
		"home_team":  homeTeam,
		"away_team":  awayTeam,
		"event_type": "unresolved_fixture",
	}).Debug("Fixture skipped, team not in strength table")
}

// LogReviewSummary logs the result of a predictions review.
func (al *AnalysisLogger) LogReviewSummary(pending, hits, misses int) {
	al.WithFields(logrus.Fields{
		"pending":    pending,
		"hits":       hits,
		"misses":     misses,
		"event_type": "review",
	}).Info("Predictions reviewed")
}
