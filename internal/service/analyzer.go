// Package service runs the live side of the model: analysing upcoming
// fixtures, reviewing logged predictions and refreshing season files.
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
	"github.com/yourusername/footy-value/internal/prediction"
	"github.com/yourusername/footy-value/internal/repository"
	"github.com/yourusername/footy-value/internal/strategy"
	"github.com/yourusername/footy-value/internal/strength"
	"github.com/yourusername/footy-value/internal/teams"
)

// ValueOpportunity is a value leg with its suggested stake.
type ValueOpportunity struct {
	Bet           models.ValueBet      `json:"bet"`
	Edge          float64              `json:"edge"`
	KellyFraction float64              `json:"kelly_fraction"`
	Level         strategy.Opportunity `json:"level"`
}

// GoalsOutlook summarises the combined expected goals of a fixture.
type GoalsOutlook string

const (
	GoalsOutlookHigh   GoalsOutlook = "many_goals"
	GoalsOutlookLow    GoalsOutlook = "few_goals"
	GoalsOutlookNormal GoalsOutlook = "normal"
)

// Combined expected goals above highGoals or below lowGoals get an outlook.
const (
	highGoals = 2.7
	lowGoals  = 2.3
)

// OutlookFor classifies combined expected goals.
func OutlookFor(expectedGoals float64) GoalsOutlook {
	switch {
	case expectedGoals > highGoals:
		return GoalsOutlookHigh
	case expectedGoals < lowGoals:
		return GoalsOutlookLow
	default:
		return GoalsOutlookNormal
	}
}

// FixtureReport is the analysis of one upcoming fixture. ValueOnUnderdog is
// set when a 1X2 value leg backs a result other than the favourite.
type FixtureReport struct {
	League          string              `json:"league"`
	EventID         string              `json:"event_id"`
	Kickoff         time.Time           `json:"kickoff"`
	HomeTeam        string              `json:"home_team"`
	AwayTeam        string              `json:"away_team"`
	Prediction      models.Prediction   `json:"prediction"`
	Favourite       models.Outcome      `json:"favourite"`
	Confidence      float64             `json:"confidence"`
	GoalsOutlook    GoalsOutlook        `json:"goals_outlook"`
	HeadToHead      strength.HeadToHead `json:"head_to_head"`
	ValueBets       []ValueOpportunity  `json:"value_bets"`
	ValueOnUnderdog bool                `json:"value_on_underdog"`
}

// AnalysisReport is the result of one analysis run.
type AnalysisReport struct {
	RunID       string          `json:"run_id"`
	TrainedOn   int             `json:"trained_on"`
	HoursAhead  int             `json:"hours_ahead"`
	EventsFound int             `json:"events_found"`
	Fixtures    []FixtureReport `json:"fixtures"`
}

// Analyzer predicts upcoming fixtures and flags value against live prices.
type Analyzer struct {
	feed         datasource.OddsFeed
	predictions  repository.PredictionLogRepository
	aliases      teams.Aliases
	leagues      []string
	hoursAhead   int
	detector     strategy.ValueDetector
	outcomeBound int
	totalsBound  int
	logger       *logger.AnalysisLogger
}

// NewAnalyzer creates an analyzer. predictions may be nil to skip logging.
func NewAnalyzer(
	cfg *config.Config,
	feed datasource.OddsFeed,
	predictions repository.PredictionLogRepository,
	aliases teams.Aliases,
	log *logrus.Logger,
) *Analyzer {
	return &Analyzer{
		feed:         feed,
		predictions:  predictions,
		aliases:      aliases,
		leagues:      cfg.OddsAPI.Leagues,
		hoursAhead:   cfg.OddsAPI.HoursAhead,
		detector:     strategy.ValueDetector{MaxOutcomeOdds: cfg.Backtest.MaxOutcomeOdds},
		outcomeBound: cfg.Model.OutcomeMaxGoals,
		totalsBound:  cfg.Model.TotalsMaxGoals,
		logger:       logger.NewAnalysisLogger(log),
	}
}

// Run trains on the whole history and analyses every priced fixture of the
// configured leagues. A league whose odds cannot be fetched is skipped.
func (a *Analyzer) Run(ctx context.Context, history []models.Match) (*AnalysisReport, error) {
	if len(history) == 0 {
		return nil, models.ErrEmptyInput
	}

	table, err := strength.NewEstimator(a.aliases).Estimate(history)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate strengths: %w", err)
	}
	predictor := prediction.NewPredictor(table, a.aliases, prediction.WithBounds(a.outcomeBound, a.totalsBound))

	report := &AnalysisReport{
		RunID:      uuid.New().String(),
		TrainedOn:  len(history),
		HoursAhead: a.hoursAhead,
	}
	a.logger.WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"matches": len(history),
		"teams":   len(table.TeamNames()),
	}).Info("Model trained")

	for _, league := range a.leagues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		events, err := a.feed.FetchOdds(ctx, league)
		if err != nil {
			a.logger.WithError(err).WithField("league", league).Warn("Failed to fetch odds, skipping league")
			continue
		}
		report.EventsFound += len(events)

		book := datasource.NewEventBook(events, a.aliases)
		for _, event := range events {
			fixture, ok := a.analyse(ctx, league, event, predictor, book, history)
			if !ok {
				continue
			}
			report.Fixtures = append(report.Fixtures, fixture)
		}
	}

	return report, nil
}

func (a *Analyzer) analyse(
	ctx context.Context,
	league string,
	event datasource.Event,
	predictor *prediction.Predictor,
	book *datasource.EventBook,
	history []models.Match,
) (FixtureReport, bool) {
	pred, ok := predictor.PredictFixture(event.HomeTeam, event.AwayTeam)
	if !ok {
		a.logger.LogUnresolvedFixture(league, event.HomeTeam, event.AwayTeam)
		metrics.RecordFixtureAnalysed(league, "unresolved")
		return FixtureReport{}, false
	}

	favourite, confidence := pred.Outcome.Favourite()
	home := a.aliases.Normalize(event.HomeTeam)
	away := a.aliases.Normalize(event.AwayTeam)

	fixture := FixtureReport{
		League:       league,
		EventID:      event.ID,
		Kickoff:      event.CommenceTime,
		HomeTeam:     event.HomeTeam,
		AwayTeam:     event.AwayTeam,
		Prediction:   pred,
		Favourite:    favourite,
		Confidence:   confidence,
		GoalsOutlook: OutlookFor(pred.ExpectedHome + pred.ExpectedAway),
		HeadToHead:   strength.HeadToHeadStats(history, a.aliases, home, away),
	}

	for _, bet := range a.detector.FindValueBets(pred, book.Odds(event.HomeTeam, event.AwayTeam)) {
		edge := bet.Edge()
		fixture.ValueBets = append(fixture.ValueBets, ValueOpportunity{
			Bet:           bet,
			Edge:          edge,
			KellyFraction: strategy.KellyFraction(bet.Probability, bet.Odds),
			Level:         strategy.OpportunityLevel(edge),
		})
		metrics.RecordValueBet(string(bet.Market))
		if backs, ok := bet.Market.Outcome(); ok && backs != favourite {
			fixture.ValueOnUnderdog = true
		}
	}

	a.record(ctx, event, favourite, confidence)
	metrics.RecordFixtureAnalysed(league, "predicted")
	a.logger.LogFixtureAnalysed(league, event.HomeTeam, event.AwayTeam, string(favourite), confidence, len(fixture.ValueBets))
	return fixture, true
}

// record logs the favourite as a pending prediction. Failures are logged
// and never abort the analysis.
func (a *Analyzer) record(ctx context.Context, event datasource.Event, favourite models.Outcome, confidence float64) {
	if a.predictions == nil {
		return
	}
	rec := &models.PredictionRecord{
		ID:               models.PredictionID(event.CommenceTime, event.HomeTeam, event.AwayTeam),
		Date:             event.CommenceTime,
		HomeTeam:         event.HomeTeam,
		AwayTeam:         event.AwayTeam,
		PredictedOutcome: favourite,
		Confidence:       confidence,
		Status:           models.PredictionPending,
	}
	inserted, err := a.predictions.InsertIfAbsent(ctx, rec)
	if err != nil {
		a.logger.WithError(err).WithField("prediction_id", rec.ID).Warn("Failed to save prediction")
		return
	}
	if inserted {
		a.logger.WithField("prediction_id", rec.ID).Debug("Prediction saved")
	}
}
