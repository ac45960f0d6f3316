package repository

import (
	"context"

	"github.com/yourusername/footy-value/internal/models"
)

// PerformanceLogRepository persists accuracy backtest results keyed by season
type PerformanceLogRepository interface {
	Upsert(ctx context.Context, entry *models.PerformanceEntry) error
	List(ctx context.Context) ([]*models.PerformanceEntry, error)
}

// FinancialLogRepository persists simulated bankroll results keyed by season and league
type FinancialLogRepository interface {
	Upsert(ctx context.Context, entry *models.FinancialEntry) error
	List(ctx context.Context) ([]*models.FinancialEntry, error)
}

// PredictionLogRepository persists live predictions awaiting review
type PredictionLogRepository interface {
	InsertIfAbsent(ctx context.Context, record *models.PredictionRecord) (bool, error)
	GetByID(ctx context.Context, id string) (*models.PredictionRecord, error)
	Pending(ctx context.Context) ([]*models.PredictionRecord, error)
	Update(ctx context.Context, record *models.PredictionRecord) error
	List(ctx context.Context) ([]*models.PredictionRecord, error)
}
