// Package usage appends dispatch outcome metadata to the SQLite usage log.
// Rows are append-only and hold task, provider, model, latency, and outcome
// only — prompt and completion content is never written here.
package usage

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/devplanhq/plangate/internal/domain/dispatch"
	"github.com/devplanhq/plangate/internal/infra/eventbus"
	"github.com/devplanhq/plangate/pkg/uuid"
)

// Recorder consumes dispatch completion events and writes the usage log.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a Recorder over db.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Record appends one usage row.
func (r *Recorder) Record(ctx context.Context, evt dispatch.CompletedEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dispatch_log (id, task, provider, model, latency_ms, outcome)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewV7().String(),
		string(evt.Task),
		string(evt.Provider),
		evt.Model,
		evt.LatencyMs,
		evt.Outcome,
	)
	if err != nil {
		return fmt.Errorf("usage: insert: %w", err)
	}
	return nil
}

// Start subscribes to dispatch completion events and records each one.
// Blocks until ctx is done; run in a goroutine. Failed inserts are logged
// and skipped — the usage log must never take down request handling.
func (r *Recorder) Start(ctx context.Context, bus eventbus.EventBus) {
	events := bus.Subscribe(dispatch.TopicCompleted)
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-events:
			ce, ok := evt.Payload.(dispatch.CompletedEvent)
			if !ok {
				continue
			}
			if err := r.Record(ctx, ce); err != nil {
				log.Printf("usage: record failed: %v", err)
			}
		}
	}
}

// Entry is one usage log row.
type Entry struct {
	ID        string
	Task      string
	Provider  string
	Model     string
	LatencyMs int64
	Outcome   string
	CreatedAt string
}

// Recent returns the most recent usage entries, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task, provider, model, latency_ms, outcome, created_at
		FROM dispatch_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("usage: query: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Task, &e.Provider, &e.Model, &e.LatencyMs, &e.Outcome, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("usage: scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
