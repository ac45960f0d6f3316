package models

import "time"

// PredictionStatus tracks whether a logged prediction has been checked.
type PredictionStatus string

const (
	PredictionPending  PredictionStatus = "PENDING"
	PredictionReviewed PredictionStatus = "REVIEWED"
)

// PredictionRecord is one row of the predictions log.
type PredictionRecord struct {
	ID               string           `json:"id"`
	Date             time.Time        `json:"date"`
	HomeTeam         string           `json:"home_team"`
	AwayTeam         string           `json:"away_team"`
	PredictedOutcome Outcome          `json:"predicted_outcome"`
	Confidence       float64          `json:"model_confidence"`
	Status           PredictionStatus `json:"status"`
	ActualOutcome    *Outcome         `json:"actual_outcome,omitempty"`
	IsCorrect        *bool            `json:"is_correct,omitempty"`
}

// PredictionID builds the log key for a fixture.
func PredictionID(kickoff time.Time, homeTeam, awayTeam string) string {
	return kickoff.UTC().Format(time.RFC3339) + "-" + homeTeam + "-" + awayTeam
}

// Review marks the record with the realised outcome.
func (r *PredictionRecord) Review(actual Outcome) {
	correct := actual == r.PredictedOutcome
	r.Status = PredictionReviewed
	r.ActualOutcome = &actual
	r.IsCorrect = &correct
}

// PerformanceEntry is one row of the accuracy performance log.
type PerformanceEntry struct {
	Timestamp              time.Time `json:"timestamp"`
	Season                 string    `json:"season_tested"`
	Accuracy               float64   `json:"accuracy"`
	HighConfidenceAccuracy float64   `json:"hc_accuracy"`
}

// FinancialEntry is one row of the financial log.
type FinancialEntry struct {
	Season        string  `json:"season_simulated"`
	League        string  `json:"league"`
	FinalBankroll float64 `json:"final_bankroll"`
	ProfitLoss    float64 `json:"profit_loss"`
	ROI           float64 `json:"roi_percent"`
}
