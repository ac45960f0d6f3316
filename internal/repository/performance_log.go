package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/footy-value/internal/models"
)

var performanceHeader = []string{"timestamp", "season_tested", "accuracy", "hc_accuracy"}

// CSVPerformanceLog implements PerformanceLogRepository on a CSV file
type CSVPerformanceLog struct {
	file csvFile
}

// NewCSVPerformanceLog creates a performance log at path
func NewCSVPerformanceLog(path string) PerformanceLogRepository {
	return &CSVPerformanceLog{file: csvFile{path: path, header: performanceHeader}}
}

// Upsert replaces the row for entry.Season or appends a new one
func (r *CSVPerformanceLog) Upsert(ctx context.Context, entry *models.PerformanceEntry) error {
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
		entry.Timestamp.UTC().Format(time.RFC3339),
		entry.Season,
		formatFloat(entry.Accuracy, 2),
		formatFloat(entry.HighConfidenceAccuracy, 2),
	}

	replaced := false
	for i, existing := range rows {
		if existing[1] == entry.Season {
			rows[i] = row
			replaced = true
			break
		}
	}
	if !replaced {
		rows = append(rows, row)
	}
	if err := r.file.writeRows(rows); err != nil {
		return fmt.Errorf("failed to upsert performance entry: %w", err)
	}
	return nil
}

// List returns all entries in file order
func (r *CSVPerformanceLog) List(ctx context.Context) ([]*models.PerformanceEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	rows, err := r.file.readRows()
	if err != nil {
		return nil, err
	}
	entries := make([]*models.PerformanceEntry, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", row[0], err)
		}
		acc, err := parseFloat(row[2])
		if err != nil {
			return nil, fmt.Errorf("invalid accuracy %q: %w", row[2], err)
		}
		hc, err := parseFloat(row[3])
		if err != nil {
			return nil, fmt.Errorf("invalid hc accuracy %q: %w", row[3], err)
		}
		entries = append(entries, &models.PerformanceEntry{
			Timestamp:              ts,
			Season:                 row[1],
			Accuracy:               acc,
			HighConfidenceAccuracy: hc,
		})
	}
	return entries, nil
}
