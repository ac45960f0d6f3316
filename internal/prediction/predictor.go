package prediction

import (
	"github.com/yourusername/footy-value/internal/models"
	"github.com/yourusername/footy-value/internal/strength"
	"github.com/yourusername/footy-value/internal/teams"
)

// PredictOutcome returns home/draw/away probabilities for the given expected goals.
func PredictOutcome(lambdaHome, lambdaAway float64) (models.OutcomeProbabilities, error) {
	m, err := NewScoreMatrix(lambdaHome, lambdaAway, OutcomeBound)
	if err != nil {
		return models.OutcomeProbabilities{}, err
	}
	return m.MatchOdds(), nil
}

// PredictOverUnder returns over/under 2.5 goal probabilities.
func PredictOverUnder(lambdaHome, lambdaAway float64) (models.GoalTotalProbabilities, error) {
	m, err := NewScoreMatrix(lambdaHome, lambdaAway, TotalsBound)
	if err != nil {
		return models.GoalTotalProbabilities{}, err
	}
	return m.OverUnder(models.GoalsThreshold), nil
}

// Predictor answers fixture queries against one strength table.
type Predictor struct {
	table        *strength.Table
	aliases      teams.Aliases
	outcomeBound int
	totalsBound  int
}

// Option customises a Predictor.
type Option func(*Predictor)

// WithBounds overrides the per-side goal bounds of both grids.
func WithBounds(outcome, totals int) Option {
	return func(p *Predictor) {
		if outcome > 0 {
			p.outcomeBound = outcome
		}
		if totals > 0 {
			p.totalsBound = totals
		}
	}
}

// NewPredictor creates a predictor over table.
func NewPredictor(table *strength.Table, aliases teams.Aliases, opts ...Option) *Predictor {
	p := &Predictor{
		table:        table,
		aliases:      aliases,
		outcomeBound: OutcomeBound,
		totalsBound:  TotalsBound,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PredictFixture predicts a fixture by raw team names. ok is false when
// either team cannot be resolved in the strength table.
func (p *Predictor) PredictFixture(homeTeam, awayTeam string) (models.Prediction, bool) {
	home := p.aliases.Normalize(homeTeam)
	away := p.aliases.Normalize(awayTeam)

	lambdaHome, lambdaAway, ok := p.table.ExpectedGoals(home, away)
	if !ok {
		return models.Prediction{}, false
	}

	outcomeGrid, err := NewScoreMatrix(lambdaHome, lambdaAway, p.outcomeBound)
	if err != nil {
		return models.Prediction{}, false
	}
	totalsGrid, err := NewScoreMatrix(lambdaHome, lambdaAway, p.totalsBound)
	if err != nil {
		return models.Prediction{}, false
	}

	return models.Prediction{
		ExpectedHome: lambdaHome,
		ExpectedAway: lambdaAway,
		Outcome:      outcomeGrid.MatchOdds(),
		Goals:        totalsGrid.OverUnder(models.GoalsThreshold),
	}, true
}
