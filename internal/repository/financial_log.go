package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/footy-value/internal/models"
)

var financialHeader = []string{"season_simulated", "league", "final_bankroll", "profit_loss", "roi_percent"}

// CSVFinancialLog implements FinancialLogRepository on a CSV file
type CSVFinancialLog struct {
	file csvFile
}

// NewCSVFinancialLog creates a financial log at path
func NewCSVFinancialLog(path string) FinancialLogRepository {
	return &CSVFinancialLog{file: csvFile{path: path, header: financialHeader}}
}

// Upsert replaces the row for (season, league) or appends a new one
func (r *CSVFinancialLog) Upsert(ctx context.Context, entry *models.FinancialEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	rows, err := r.file.readRows()
	if err != nil {
		return err
	}
	row := []string{
		entry.Season,
		entry.League,
		formatFloat(entry.FinalBankroll, 2),
		formatFloat(entry.ProfitLoss, 2),
		formatFloat(entry.ROI, 2),
	}

	replaced := false
	for i, existing := range rows {
		if existing[0] == entry.Season && existing[1] == entry.League {
			rows[i] = row
			replaced = true
			break
		}
	}
	if !replaced {
		rows = append(rows, row)
	}
	if err := r.file.writeRows(rows); err != nil {
		return fmt.Errorf("failed to upsert financial entry: %w", err)
	}
	return nil
}

// List returns all entries in file order
func (r *CSVFinancialLog) List(ctx context.Context) ([]*models.FinancialEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	rows, err := r.file.readRows()
	if err != nil {
		return nil, err
	}
	entries := make([]*models.FinancialEntry, 0, len(rows))
	for _, row := range rows {
		values := make([]float64, 3)
		for i := range values {
			v, err := parseFloat(row[2+i])
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q: %w", financialHeader[2+i], row[2+i], err)
			}
			values[i] = v
		}
		entries = append(entries, &models.FinancialEntry{
			Season:        row[0],
			League:        row[1],
			FinalBankroll: values[0],
			ProfitLoss:    values[1],
			ROI:           values[2],
		})
	}
	return entries, nil
}
