package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/footy-value/internal/config"
)

const oddsFixture = `[
  {
    "id": "e1",
    "sport_key": "soccer_epl",
    "sport_title": "EPL",
    "commence_time": "2024-03-02T15:00:00Z",
    "home_team": "Arsenal",
    "away_team": "Chelsea",
    "bookmakers": [
      {
        "key": "pinnacle",
        "title": "Pinnacle",
        "last_update": "2024-03-01T10:00:00Z",
        "markets": [
          {"key": "h2h", "outcomes": [
            {"name": "Arsenal", "price": 1.8},
            {"name": "Chelsea", "price": 4.5},
            {"name": "Draw", "price": 3.9}
          ]},
          {"key": "totals", "outcomes": [
            {"name": "Over", "price": 1.7, "point": 2.5},
            {"name": "Under", "price": 2.2, "point": 2.5}
          ]}
        ]
      }
    ]
  }
]`

const scoresFixture = `[
  {
    "id": "s1",
    "sport_key": "soccer_epl",
    "commence_time": "2024-02-25T14:00:00Z",
    "completed": true,
    "home_team": "Arsenal",
    "away_team": "Chelsea",
    "scores": [{"name": "Chelsea", "score": "1"}, {"name": "Arsenal", "score": "3"}]
  },
  {
    "id": "s2",
    "sport_key": "soccer_epl",
    "commence_time": "2024-02-26T19:45:00Z",
    "completed": false,
    "home_team": "Spurs",
    "away_team": "Everton",
    "scores": null
  }
]`

func testHTTPConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           2 * time.Second,
		MaxRetries:        0,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      2 * time.Millisecond,
		RateLimit:         1000,
		CircuitBreakerMax: 3,
	}
}

func newTestOddsClient(t *testing.T, handler http.HandlerFunc) (*OddsAPIClient, *RateLimitedHTTPClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := NewRateLimitedHTTPClient(testHTTPConfig(), nil)
	client := NewOddsAPIClient(httpClient, config.OddsAPIConfig{
		BaseURL: server.URL + "/v4/",
		APIKey:  "secret",
	}, nil)
	client.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return client, httpClient
}

func TestFetchOdds(t *testing.T) {
	client, _ := newTestOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/sports/soccer_epl/odds", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("apiKey"))
		assert.Equal(t, "eu", q.Get("regions"))
		assert.Equal(t, "h2h,totals", q.Get("markets"))
		assert.Equal(t, "decimal", q.Get("oddsFormat"))
		assert.Equal(t, "2024-03-01T12:00:00Z", q.Get("commenceTimeFrom"))
		assert.Equal(t, "2024-03-04T12:00:00Z", q.Get("commenceTimeTo"))

		w.Header().Set("x-requests-remaining", "480")
		w.Write([]byte(oddsFixture))
	})

	events, err := client.FetchOdds(context.Background(), "soccer_epl")
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "Arsenal", e.HomeTeam)
	assert.Equal(t, "Chelsea", e.AwayTeam)
	require.Len(t, e.Bookmakers, 1)
	require.Len(t, e.Bookmakers[0].Markets, 2)
	totals := e.Bookmakers[0].Markets[1]
	require.NotNil(t, totals.Outcomes[0].Point)
	assert.Equal(t, 2.5, *totals.Outcomes[0].Point)
	assert.Equal(t, "the_odds_api", client.Name())
}

func TestFetchScores(t *testing.T) {
	client, _ := newTestOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/sports/soccer_epl/scores", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("daysFrom"))
		w.Write([]byte(scoresFixture))
	})

	events, err := client.FetchScores(context.Background(), "soccer_epl", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	home, away, ok := events[0].Goals()
	assert.True(t, ok)
	assert.Equal(t, 3, home)
	assert.Equal(t, 1, away)

	_, _, ok = events[1].Goals()
	assert.False(t, ok, "incomplete events have no score")
}

func TestScoreEventGoalsRejectsBadScores(t *testing.T) {
	e := ScoreEvent{
		Completed: true,
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		Scores:    []TeamScore{{Name: "Arsenal", Score: "two"}, {Name: "Chelsea", Score: "0"}},
	}
	_, _, ok := e.Goals()
	assert.False(t, ok)

	e.Scores = []TeamScore{{Name: "Arsenal", Score: "2"}, {Name: "Fulham", Score: "0"}}
	_, _, ok = e.Goals()
	assert.False(t, ok)
}

func TestOddsAPIStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantErr  error
	}{
		{"unauthorized", http.StatusUnauthorized, "", ErrCodeAuthenticationFailed, ErrAuthenticationFailed},
		{"rate limited", http.StatusTooManyRequests, "", ErrCodeRateLimitExceeded, ErrRateLimitExceeded},
		{"unknown sport", http.StatusNotFound, "", ErrCodeNotFound, nil},
		{"server error", http.StatusBadGateway, "upstream down", ErrCodeServerError, nil},
		{"bad payload", http.StatusOK, "{not json", ErrCodeInvalidData, ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.FetchOdds(context.Background(), "soccer_epl")
			require.Error(t, err)

			var dsErr DataSourceError
			require.True(t, errors.As(err, &dsErr))
			assert.Equal(t, tt.wantCode, dsErr.Code)
			assert.Equal(t, "the_odds_api", dsErr.Source)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCircuitBreakerOpensAfterServerErrors(t *testing.T) {
	var calls int32
	client, httpClient := newTestOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := client.FetchOdds(ctx, "soccer_epl")
		require.Error(t, err)
	}
	assert.True(t, httpClient.IsOpen())
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	_, err := client.FetchOdds(ctx, "soccer_epl")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "open breaker short-circuits")

	httpClient.Reset()
	assert.False(t, httpClient.IsOpen())
}

func TestRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxRetries = 2
	httpClient := NewRateLimitedHTTPClient(cfg, nil)
	defer httpClient.Close()

	resp, err := httpClient.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.False(t, httpClient.IsOpen())
}

func TestHTTPClientConfigFrom(t *testing.T) {
	c := HTTPClientConfigFrom(config.OddsAPIConfig{RequestTimeoutSeconds: 5, MaxRetries: 1, RateLimit: 0.5})
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, 1, c.MaxRetries)
	assert.Equal(t, 0.5, c.RateLimit)
	assert.Equal(t, DefaultHTTPClientConfig().CircuitBreakerMax, c.CircuitBreakerMax)

	c = HTTPClientConfigFrom(config.OddsAPIConfig{})
	assert.Equal(t, DefaultHTTPClientConfig(), c)
}
