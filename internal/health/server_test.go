package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	next := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	s := NewServer(Config{
		ServiceName: "analyzer",
		Version:     "1.0.0",
		NextRun:     func() time.Time { return next },
	})

	rec := get(t, s.Handler(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "analyzer", body.Service)
	assert.Equal(t, "2024-03-02T09:00:00Z", body.NextRun)

	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/live").Code)
}

func TestReadyEndpoint(t *testing.T) {
	breakerOpen := false
	feed := CheckFunc{Label: "odds_feed", Fn: func(ctx context.Context) error {
		if breakerOpen {
			return errors.New("circuit breaker open")
		}
		return nil
	}}
	s := NewServer(Config{ServiceName: "analyzer", Checks: []Checker{feed}})

	tests := []struct {
		name       string
		ready      bool
		open       bool
		wantStatus int
		wantFeed   string
	}{
		{"not marked ready", false, false, http.StatusServiceUnavailable, "ok"},
		{"ready", true, false, http.StatusOK, "ok"},
		{"feed unavailable", true, true, http.StatusServiceUnavailable, "error: circuit breaker open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetReady(tt.ready)
			breakerOpen = tt.open

			rec := get(t, s.Handler(), "/ready")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ReadyResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantFeed, body.Checks["odds_feed"])
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "footy_value_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	s := NewServer(Config{Registry: reg})
	rec := get(t, s.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "footy_value_test_total 1"))

	assert.Equal(t, http.StatusNotFound, get(t, NewServer(Config{}).Handler(), "/metrics").Code)
}
