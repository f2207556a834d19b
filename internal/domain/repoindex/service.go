// Package repoindex records the caller's indexed file inventory. Only file
// metadata is stored (path, size, content hash) — file content is hashed
// and discarded. Related-file lookups are a directory-neighbor heuristic
// over the recorded inventory.
package repoindex

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"path"

	"github.com/devplanhq/plangate/pkg/uuid"
)

// FileContext is one file submitted for indexing.
type FileContext struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Service stores and queries the repo file inventory.
type Service struct {
	db *sql.DB
}

// NewService creates a Service over db.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Index upserts metadata for each submitted file and returns how many were
// recorded. Re-indexing a path replaces its previous row.
func (s *Service) Index(ctx context.Context, files []FileContext) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repoindex: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	count := 0
	for _, f := range files {
		if f.Path == "" {
			continue
		}
		sum := sha256.Sum256([]byte(f.Content))
		_, err := tx.ExecContext(ctx, `
			INSERT INTO repo_files (id, path, size_bytes, content_sha256)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				size_bytes = excluded.size_bytes,
				content_sha256 = excluded.content_sha256,
				indexed_at = datetime('now')`,
			uuid.NewV7().String(), f.Path, len(f.Content), hex.EncodeToString(sum[:]),
		)
		if err != nil {
			return 0, fmt.Errorf("repoindex: upsert %s: %w", f.Path, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("repoindex: commit: %w", err)
	}
	return count, nil
}

// Related returns indexed files that live in the same directory as target,
// excluding target itself. Paths come back in lexicographic order.
func (s *Service) Related(ctx context.Context, target string) ([]string, error) {
	dir := path.Dir(target)

	rows, err := s.db.QueryContext(ctx,
		"SELECT path FROM repo_files WHERE path != ? ORDER BY path", target)
	if err != nil {
		return nil, fmt.Errorf("repoindex: query: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var related []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("repoindex: scan: %w", err)
		}
		if path.Dir(p) == dir {
			related = append(related, p)
		}
	}
	return related, rows.Err()
}

// Count returns how many files are currently indexed.
func (s *Service) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM repo_files").Scan(&n); err != nil {
		return 0, fmt.Errorf("repoindex: count: %w", err)
	}
	return n, nil
}
