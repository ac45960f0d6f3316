package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/footy-value/internal/config"
	"github.com/yourusername/footy-value/internal/metrics"
)

const oddsAPISource = "the_odds_api"

// DefaultOddsAPIBaseURL is the v4 endpoint of the-odds-api.com
const DefaultOddsAPIBaseURL = "https://api.the-odds-api.com/v4"

// OddsAPIClient implements OddsFeed for the-odds-api.com
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	regions    string
	markets    []string
	hoursAhead int
	logger     *logrus.Entry
	now        func() time.Time
}

// NewOddsAPIClient creates a new odds feed client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, cfg config.OddsAPIConfig, logger *logrus.Logger) *OddsAPIClient {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOddsAPIBaseURL
	}
	regions := cfg.Regions
	if regions == "" {
		regions = "eu"
	}
	markets := cfg.Markets
	if len(markets) == 0 {
		markets = []string{"h2h", "totals"}
	}
	hours := cfg.HoursAhead
	if hours <= 0 {
		hours = 72
	}

	return &OddsAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		regions:    regions,
		markets:    markets,
		hoursAhead: hours,
		logger:     logger.WithField("component", oddsAPISource),
		now:        time.Now,
	}
}

// Name returns the feed name
func (c *OddsAPIClient) Name() string {
	return oddsAPISource
}

// FetchOdds retrieves events starting within the configured window
func (c *OddsAPIClient) FetchOdds(ctx context.Context, sportKey string) ([]Event, error) {
	from := c.now().UTC().Truncate(time.Second)
	to := from.Add(time.Duration(c.hoursAhead) * time.Hour)

	params := url.Values{}
	params.Set("regions", c.regions)
	params.Set("markets", strings.Join(c.markets, ","))
	params.Set("oddsFormat", "decimal")
	params.Set("commenceTimeFrom", from.Format(time.RFC3339))
	params.Set("commenceTimeTo", to.Format(time.RFC3339))

	var events []Event
	if err := c.get(ctx, "odds", sportKey, params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// FetchScores retrieves events played in the last daysFrom days
func (c *OddsAPIClient) FetchScores(ctx context.Context, sportKey string, daysFrom int) ([]ScoreEvent, error) {
	if daysFrom <= 0 {
		daysFrom = 3
	}
	params := url.Values{}
	params.Set("daysFrom", strconv.Itoa(daysFrom))

	var events []ScoreEvent
	if err := c.get(ctx, "scores", sportKey, params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *OddsAPIClient) get(ctx context.Context, endpoint, sportKey string, params url.Values, out interface{}) error {
	params.Set("apiKey", c.apiKey)
	reqURL := fmt.Sprintf("%s/sports/%s/%s?%s", c.baseURL, url.PathEscape(sportKey), endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return NewDataSourceError(oddsAPISource, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		metrics.RecordOddsRequest(endpoint, "error")
		return NewDataSourceError(oddsAPISource, ErrCodeNetworkError, "failed to fetch "+endpoint, err)
	}
	defer resp.Body.Close()
	metrics.RecordOddsRequest(endpoint, strconv.Itoa(resp.StatusCode))

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
		c.logger.WithFields(logrus.Fields{"endpoint": endpoint, "sport": sportKey, "requests_remaining": remaining}).Debug("Odds feed quota")
	}

	// Handle authentication errors
	if resp.StatusCode == http.StatusUnauthorized {
		return NewDataSourceError(oddsAPISource, ErrCodeAuthenticationFailed, "invalid API key", ErrAuthenticationFailed)
	}

	// Handle rate limiting
	if resp.StatusCode == http.StatusTooManyRequests {
		return NewDataSourceError(oddsAPISource, ErrCodeRateLimitExceeded, "rate limit exceeded", ErrRateLimitExceeded)
	}

	if resp.StatusCode == http.StatusNotFound {
		return NewDataSourceError(oddsAPISource, ErrCodeNotFound, "unknown sport "+sportKey, nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return NewDataSourceError(oddsAPISource, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(oddsAPISource, ErrCodeInvalidData, "failed to parse response", fmt.Errorf("%w: %v", ErrInvalidData, err))
	}
	return nil
}

// Goals returns the home and away goals of a completed event.
func (e ScoreEvent) Goals() (home, away int, ok bool) {
	if !e.Completed || len(e.Scores) < 2 {
		return 0, 0, false
	}
	found := 0
	for _, s := range e.Scores {
		goals, err := strconv.Atoi(strings.TrimSpace(s.Score))
		if err != nil {
			return 0, 0, false
		}
		switch s.Name {
		case e.HomeTeam:
			home = goals
			found++
		case e.AwayTeam:
			away = goals
			found++
		}
	}
	return home, away, found == 2
}
