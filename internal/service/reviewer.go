package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-value/internal/config"
	"github.com/yourusername/footy-value/internal/datasource"
	"github.com/yourusername/footy-value/internal/logger"
	"github.com/yourusername/footy-value/internal/metrics"
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/repository"
	"github.com/yourusername/footy-value/internal/teams"
)

// ReviewReport summarises a pass over pending predictions.
type ReviewReport struct {
	RunID     string                     `json:"run_id"`
	Pending   int                        `json:"pending"`
	Hits      int                        `json:"hits"`
	Misses    int                        `json:"misses"`
	Precision float64                    `json:"precision"`
	Reviewed  []*models.PredictionRecord `json:"reviewed"`
}

// Reviewer settles pending predictions against recent scores.
type Reviewer struct {
	feed        datasource.OddsFeed
	predictions repository.PredictionLogRepository
	aliases     teams.Aliases
	leagues     []string
	daysFrom    int
	logger      *logger.AnalysisLogger
}

// NewReviewer creates a prediction reviewer
func NewReviewer(
	cfg *config.Config,
	feed datasource.OddsFeed,
	predictions repository.PredictionLogRepository,
	aliases teams.Aliases,
	log *logrus.Logger,
) *Reviewer {
	return &Reviewer{
		feed:        feed,
		predictions: predictions,
		aliases:     aliases,
		leagues:     cfg.OddsAPI.Leagues,
		daysFrom:    cfg.OddsAPI.ScoresDaysFrom,
		logger:      logger.NewAnalysisLogger(log),
	}
}

// Run reviews every pending prediction whose fixture has a final score.
// Predictions without a matching completed event stay pending.
func (r *Reviewer) Run(ctx context.Context) (*ReviewReport, error) {
	pending, err := r.predictions.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending predictions: %w", err)
	}

	report := &ReviewReport{RunID: uuid.New().String(), Pending: len(pending)}
	if len(pending) == 0 {
		r.logger.LogReviewSummary(0, 0, 0)
		return report, nil
	}

	var scores []datasource.ScoreEvent
	for _, league := range r.leagues {
		events, err := r.feed.FetchScores(ctx, league, r.daysFrom)
		if err != nil {
			r.logger.WithError(err).WithField("league", league).Warn("Failed to fetch scores, skipping league")
			continue
		}
		scores = append(scores, events...)
	}

	for _, rec := range pending {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		homeGoals, awayGoals, ok := r.findScore(rec, scores)
		if !ok {
			continue
		}

		rec.Review(models.Match{HomeGoals: homeGoals, AwayGoals: awayGoals}.Result())
		if err := r.predictions.Update(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to update prediction %s: %w", rec.ID, err)
		}

		correct := *rec.IsCorrect
		metrics.RecordPredictionReviewed(correct)
		if correct {
			report.Hits++
		} else {
			report.Misses++
		}
		report.Reviewed = append(report.Reviewed, rec)
	}

	if settled := report.Hits + report.Misses; settled > 0 {
		report.Precision = float64(report.Hits) / float64(settled) * 100
	}
	r.logger.LogReviewSummary(report.Pending, report.Hits, report.Misses)
	return report, nil
}

// findScore matches a prediction to a completed event by normalised teams
// and kickoff date.
func (r *Reviewer) findScore(rec *models.PredictionRecord, scores []datasource.ScoreEvent) (int, int, bool) {
	home := r.aliases.Normalize(rec.HomeTeam)
	away := r.aliases.Normalize(rec.AwayTeam)
	day := rec.Date.UTC().Format(time.DateOnly)

	for _, s := range scores {
		if !s.Completed {
			continue
		}
		if r.aliases.Normalize(s.HomeTeam) != home || r.aliases.Normalize(s.AwayTeam) != away {
			continue
		}
		if s.CommenceTime.UTC().Format(time.DateOnly) != day {
			continue
		}
		return s.Goals()
	}
	return 0, 0, false
}
