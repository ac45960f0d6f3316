package repository

import (
	"fmt"

	"github.com/yourusername/footy-value/internal/config"
)

// Repositories holds all repository implementations
type Repositories struct {
	Performance PerformanceLogRepository
	Financial   FinancialLogRepository
	Predictions PredictionLogRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(cfg config.LogsConfig) (*Repositories, error) {
	if cfg.PerformanceLog == "" || cfg.FinancialLog == "" || cfg.PredictionsLog == "" {
		return nil, fmt.Errorf("all log paths are required")
	}

	return &Repositories{
		Performance: NewCSVPerformanceLog(cfg.PerformanceLog),
		Financial:   NewCSVFinancialLog(cfg.FinancialLog),
		Predictions: NewCSVPredictionLog(cfg.PredictionsLog),
	}, nil
}
