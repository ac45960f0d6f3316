// Package metrics provides the centralized Prometheus metrics registry.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "footy_value"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	OddsRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "odds_requests_total",
		Help:      "Total number of odds feed requests by endpoint and status",
	}, []string{"endpoint", "status"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of circuit breaker trips",
	})
	FixturesAnalysedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "fixtures_analysed_total",
		Help:      "Total number of upcoming fixtures analysed by league and result",
	}, []string{"league", "result"})
	ValueBetsFoundTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "value_bets_found_total",
		Help:      "Total number of value bets detected by market",
	}, []string{"market"})
	PredictionsReviewedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "predictions_reviewed_total",
		Help:      "Total number of logged predictions reviewed by correctness",
	}, []string{"correct"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(OddsRequestsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(FixturesAnalysedTotal)
		registry.MustRegister(ValueBetsFoundTotal)
		registry.MustRegister(PredictionsReviewedTotal)

		// Register backtest metrics
		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(MatchesEvaluatedTotal)
		registry.MustRegister(MatchesSkippedTotal)
		registry.MustRegister(BacktestBetsPlacedTotal)
		registry.MustRegister(StrengthCacheLookupsTotal)
		registry.MustRegister(SeasonAccuracy)
		registry.MustRegister(LeagueFinalBankroll)
		registry.MustRegister(LeagueROI)
		registry.MustRegister(BacktestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// WriteTextfile writes the registry in the node exporter textfile format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, GetRegistry()); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// RecordOddsRequest records an odds feed request.
func RecordOddsRequest(endpoint, status string) {
	OddsRequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// RecordFixtureAnalysed records an analysed fixture.
// result should be one of: "predicted", "unresolved"
func RecordFixtureAnalysed(league, result string) {
	FixturesAnalysedTotal.WithLabelValues(league, result).Inc()
}

// RecordValueBet records a detected value bet.
func RecordValueBet(market string) {
	ValueBetsFoundTotal.WithLabelValues(market).Inc()
}

// RecordPredictionReviewed records a reviewed prediction.
func RecordPredictionReviewed(correct bool) {
	label := "false"
	if correct {
		label = "true"
	}
	PredictionsReviewedTotal.WithLabelValues(label).Inc()
}
