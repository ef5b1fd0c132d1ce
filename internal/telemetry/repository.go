package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gwillis-inovacon/discourse-onboarding-tour/internal/models"
)

// Repository errors.
var (
	ErrInvalidEvent = errors.New("invalid tour event")
)

const eventsSchema = `
CREATE TABLE IF NOT EXISTS tour_events (
	id            TEXT PRIMARY KEY,
	run_id        TEXT NOT NULL,
	type          TEXT NOT NULL,
	visitor_class TEXT NOT NULL,
	step_index    INTEGER NOT NULL,
	locator       TEXT,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tour_events_run ON tour_events(run_id, created_at);
`

// Repository persists tour events in SQLite and implements Recorder.
type Repository struct {
	db *sql.DB
}

// NewRepository creates the repository and bootstraps its schema.
func NewRepository(db *sql.DB) (*Repository, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	if _, err := db.Exec(eventsSchema); err != nil {
		return nil, fmt.Errorf("create tour_events table: %w", err)
	}
	return &Repository{db: db}, nil
}

// Record implements Recorder.
func (r *Repository) Record(ctx context.Context, event *models.TourEvent) error {
	if event == nil || event.ID == "" || event.RunID == "" || event.Type == "" {
		return ErrInvalidEvent
	}

	var locator *string
	if event.Locator != "" {
		locator = &event.Locator
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tour_events (id, run_id, type, visitor_class, step_index, locator, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		event.ID,
		event.RunID,
		string(event.Type),
		string(event.VisitorClass),
		event.StepIndex,
		locator,
		event.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert tour event: %w", err)
	}
	return nil
}

// ListByRun returns a run's events in recording order.
func (r *Repository) ListByRun(ctx context.Context, runID string) ([]*models.TourEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_id, type, visitor_class, step_index, locator, created_at
		FROM tour_events
		WHERE run_id = ?
		ORDER BY created_at ASC, id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query tour events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// Recent returns the newest events across all runs, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]*models.TourEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_id, type, visitor_class, step_index, locator, created_at
		FROM tour_events
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query tour events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]*models.TourEvent, error) {
	events := make([]*models.TourEvent, 0)
	for rows.Next() {
		var (
			event     models.TourEvent
			locator   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&event.ID, &event.RunID, &event.Type, &event.VisitorClass, &event.StepIndex, &locator, &createdAt); err != nil {
			return nil, fmt.Errorf("scan tour event: %w", err)
		}
		if locator.Valid {
			event.Locator = locator.String
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse event timestamp: %w", err)
		}
		event.CreatedAt = parsed
		events = append(events, &event)
	}
	return events, rows.Err()
}
