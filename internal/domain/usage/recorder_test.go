package usage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/devplanhq/plangate/internal/domain/dispatch"
	"github.com/devplanhq/plangate/internal/infra/eventbus"
	"github.com/devplanhq/plangate/internal/infra/llm"
	"github.com/devplanhq/plangate/internal/infra/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	return db
}

func TestRecorder_Record_And_Recent(t *testing.T) {
	t.Parallel()

	r := NewRecorder(newTestDB(t))
	ctx := context.Background()

	evt := dispatch.CompletedEvent{
		Task:      dispatch.TaskPRD,
		Provider:  llm.ProviderOpenAI,
		Model:     "gpt-4.1",
		LatencyMs: 321,
		Outcome:   "ok",
	}
	if err := r.Record(ctx, evt); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := r.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Task != "prd" || e.Provider != "openai" || e.LatencyMs != 321 || e.Outcome != "ok" {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestRecorder_Start_ConsumesBusEvents(t *testing.T) {
	t.Parallel()

	r := NewRecorder(newTestDB(t))
	bus := eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go r.Start(ctx, bus)

	// Let the subscriber register before publishing.
	time.Sleep(10 * time.Millisecond)
	bus.Publish(dispatch.TopicCompleted, dispatch.CompletedEvent{
		Task:     dispatch.TaskSearch,
		Provider: llm.ProviderGemini,
		Outcome:  "provider_timeout",
	})

	deadline := time.After(2 * time.Second)
	for {
		entries, err := r.Recent(context.Background(), 10)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(entries) == 1 {
			if entries[0].Outcome != "provider_timeout" {
				t.Errorf("unexpected outcome %q", entries[0].Outcome)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for recorder to consume event")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
