package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/yourusername/footy-value/internal/models"
)

var predictionHeader = []string{
	"id", "date", "home_team", "away_team", "predicted_outcome",
	"model_confidence", "status", "actual_outcome", "is_correct",
}

// CSVPredictionLog implements PredictionLogRepository on a CSV file
type CSVPredictionLog struct {
	file csvFile
}

// NewCSVPredictionLog creates a prediction log at path
func NewCSVPredictionLog(path string) PredictionLogRepository {
	return &CSVPredictionLog{file: csvFile{path: path, header: predictionHeader}}
}

// InsertIfAbsent appends record unless its ID is already logged.
// It reports whether a row was written.
func (r *CSVPredictionLog) InsertIfAbsent(ctx context.Context, record *models.PredictionRecord) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	rows, err := r.file.readRows()
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if row[0] == record.ID {
			return false, nil
		}
	}
	rows = append(rows, encodePrediction(record))
	if err := r.file.writeRows(rows); err != nil {
		return false, fmt.Errorf("failed to insert prediction: %w", err)
	}
	return true, nil
}

// GetByID retrieves a prediction by ID
func (r *CSVPredictionLog) GetByID(ctx context.Context, id string) (*models.PredictionRecord, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("prediction %s: %w", id, models.ErrNotFound)
}

// Pending returns predictions that have not been reviewed
func (r *CSVPredictionLog) Pending(ctx context.Context) ([]*models.PredictionRecord, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	pending := make([]*models.PredictionRecord, 0, len(records))
	for _, rec := range records {
		if rec.Status == models.PredictionPending {
			pending = append(pending, rec)
		}
	}
	return pending, nil
}

// Update replaces the row with the same ID
func (r *CSVPredictionLog) Update(ctx context.Context, record *models.PredictionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	rows, err := r.file.readRows()
	if err != nil {
		return err
	}
	for i, row := range rows {
		if row[0] == record.ID {
			rows[i] = encodePrediction(record)
			if err := r.file.writeRows(rows); err != nil {
				return fmt.Errorf("failed to update prediction: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("prediction %s: %w", record.ID, models.ErrNotFound)
}

// List returns all predictions in file order
func (r *CSVPredictionLog) List(ctx context.Context) ([]*models.PredictionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	rows, err := r.file.readRows()
	if err != nil {
		return nil, err
	}
	records := make([]*models.PredictionRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := decodePrediction(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func encodePrediction(rec *models.PredictionRecord) []string {
	actual, correct := "", ""
	if rec.ActualOutcome != nil {
		actual = rec.ActualOutcome.Code()
	}
	if rec.IsCorrect != nil {
		correct = strconv.FormatBool(*rec.IsCorrect)
	}
	return []string{
		rec.ID,
		rec.Date.UTC().Format(time.RFC3339),
		rec.HomeTeam,
		rec.AwayTeam,
		rec.PredictedOutcome.Code(),
		formatFloat(rec.Confidence, 4),
		string(rec.Status),
		actual,
		correct,
	}
}

func decodePrediction(row []string) (*models.PredictionRecord, error) {
	date, err := time.Parse(time.RFC3339, row[1])
	if err != nil {
		return nil, fmt.Errorf("invalid prediction date %q: %w", row[1], err)
	}
	predicted, ok := models.OutcomeFromCode(row[4])
	if !ok {
		return nil, fmt.Errorf("invalid predicted outcome %q", row[4])
	}
	confidence, err := parseFloat(row[5])
	if err != nil {
		return nil, fmt.Errorf("invalid confidence %q: %w", row[5], err)
	}

	rec := &models.PredictionRecord{
		ID:               row[0],
		Date:             date,
		HomeTeam:         row[2],
		AwayTeam:         row[3],
		PredictedOutcome: predicted,
		Confidence:       confidence,
		Status:           models.PredictionStatus(row[6]),
	}
	if row[7] != "" {
		actual, ok := models.OutcomeFromCode(row[7])
		if !ok {
			return nil, fmt.Errorf("invalid actual outcome %q", row[7])
		}
		rec.ActualOutcome = &actual
	}
	if row[8] != "" {
		correct, err := strconv.ParseBool(row[8])
		if err != nil {
			return nil, fmt.Errorf("invalid is_correct %q: %w", row[8], err)
		}
		rec.IsCorrect = &correct
	}
	return rec, nil
}
