// Package memory is the small append-only project-memory store: callers
// append short notes (optionally under a key) and read them back. Notes are
// caller-supplied documents, not dispatch request/response content.
package memory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/devplanhq/plangate/pkg/uuid"
)

// Note is one stored memory entry.
type Note struct {
	ID        string `json:"id"`
	Key       string `json:"key,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Service stores and reads memory notes. Append-only: no updates, no deletes.
type Service struct {
	db *sql.DB
}

// NewService creates a Service over db.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Append stores a note. key may be empty for unkeyed notes.
func (s *Service) Append(ctx context.Context, key, content string) (*Note, error) {
	if content == "" {
		return nil, fmt.Errorf("memory: content is required")
	}
	id := uuid.NewV7().String()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO memory_notes (id, key, content) VALUES (?, ?, ?)", id, key, content)
	if err != nil {
		return nil, fmt.Errorf("memory: insert: %w", err)
	}
	return &Note{ID: id, Key: key, Content: content}, nil
}

// Read returns notes oldest-first. With a non-empty key only that key's
// notes are returned; otherwise all notes.
func (s *Service) Read(ctx context.Context, key string) ([]Note, error) {
	query := "SELECT id, key, content, created_at FROM memory_notes ORDER BY id"
	args := []any{}
	if key != "" {
		query = "SELECT id, key, content, created_at FROM memory_notes WHERE key = ? ORDER BY id"
		args = append(args, key)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("memory: query: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Key, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("memory: scan: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
