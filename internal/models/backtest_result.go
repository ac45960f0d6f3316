package models

import "time"

// Trend compares the latest season's accuracy with the one before.
type Trend string

const (
	TrendNone      Trend = "none"
	TrendImproved  Trend = "improved"
	TrendRegressed Trend = "regressed"
	TrendStable    Trend = "stable"
)

// SeasonResult is one step of the accuracy walk-forward.
type SeasonResult struct {
	Season                 string  `json:"season"`
	Year                   int     `json:"year"`
	Accuracy               float64 `json:"accuracy"`
	HighConfidenceAccuracy float64 `json:"high_confidence_accuracy"`
	Tested                 int     `json:"tested"`
	Correct                int     `json:"correct"`
	HighConfidenceTested   int     `json:"high_confidence_tested"`
	HighConfidenceCorrect  int     `json:"high_confidence_correct"`
}

// LeagueReport summarises one league's simulated bankroll.
type LeagueReport struct {
	Season          string  `json:"season"`
	League          string  `json:"league"`
	LeagueName      string  `json:"league_name"`
	InitialBankroll float64 `json:"initial_bankroll"`
	FinalBankroll   float64 `json:"final_bankroll"`
	ProfitLoss      float64 `json:"profit_loss"`
	TotalStaked     float64 `json:"total_staked"`
	ROI             float64 `json:"roi_percent"`
	MaxDrawdown     float64 `json:"max_drawdown"`
	BetsPlaced      int     `json:"bets_placed"`
	BetsWon         int     `json:"bets_won"`
}

// SettledBet is a simulated bet with its result.
type SettledBet struct {
	Date        time.Time `json:"date"`
	League      string    `json:"league"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	Market      Market    `json:"market"`
	Odds        float64   `json:"odds"`
	Probability float64   `json:"probability"`
	Stake       float64   `json:"stake"`
	Won         bool      `json:"won"`
	ProfitLoss  float64   `json:"profit_loss"`
	Bankroll    float64   `json:"bankroll_after"`
}

// LeagueNames maps football-data league codes to display names.
var LeagueNames = map[string]string{
	"SP1": "La Liga",
	"E0":  "Premier League",
	"D1":  "Bundesliga",
	"I1":  "Serie A",
	"F1":  "Ligue 1",
}

// LeagueName returns the display name for a code, or the code itself.
func LeagueName(code string) string {
	if name, ok := LeagueNames[code]; ok {
		return name
	}
	return code
}
