package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/footy-value/internal/models"
)

// MatchSource loads completed historical matches
type MatchSource interface {
	Load(ctx context.Context, paths []string) ([]models.Match, error)
}

// OddsFeed fetches upcoming prices and recent results for a competition
type OddsFeed interface {
	// FetchOdds retrieves upcoming events with bookmaker prices
	FetchOdds(ctx context.Context, sportKey string) ([]Event, error)

	// FetchScores retrieves events played in the last daysFrom days
	FetchScores(ctx context.Context, sportKey string, daysFrom int) ([]ScoreEvent, error)

	// Name returns the name of the feed
	Name() string
}

// Event is an upcoming fixture with bookmaker prices
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one bookmaker's markets for an event
type Bookmaker struct {
	Key        string         `json:"key"`
	Title      string         `json:"title"`
	LastUpdate time.Time      `json:"last_update"`
	Markets    []BookmakerMkt `json:"markets"`
}

// BookmakerMkt is a priced market such as h2h or totals
type BookmakerMkt struct {
	Key      string         `json:"key"`
	Outcomes []PriceOutcome `json:"outcomes"`
}

// PriceOutcome is one priced selection. Point is set for totals.
type PriceOutcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// ScoreEvent is a recent fixture and, once completed, its score
type ScoreEvent struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	Completed    bool        `json:"completed"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Scores       []TeamScore `json:"scores"`
}

// TeamScore is one side's goals, reported as a string by the feed
type TeamScore struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes the underlying error
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidData          = errors.New("invalid data format")
	ErrCircuitOpen          = errors.New("circuit breaker open")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
