// HTTP handlers for the /memory/* endpoints.
package handlers

import (
	"context"
	"net/http"

	"github.com/devplanhq/plangate/internal/domain/memory"
)

// MemoryStore is the slice of the memory service the handlers need.
type MemoryStore interface {
	Append(ctx context.Context, key, content string) (*memory.Note, error)
	Read(ctx context.Context, key string) ([]memory.Note, error)
}

// MemoryHandler serves the /memory/* endpoints.
type MemoryHandler struct {
	store MemoryStore
}

// NewMemoryHandler creates a MemoryHandler over the store.
func NewMemoryHandler(store MemoryStore) *MemoryHandler {
	return &MemoryHandler{store: store}
}

// MemoryRequest is the request body for both memory endpoints. Append
// requires content; Read uses only the optional key.
type MemoryRequest struct {
	Content string `json:"content"`
	Key     string `json:"key,omitempty"`
}

// Append handles POST /memory/append.
func (h *MemoryHandler) Append(w http.ResponseWriter, r *http.Request) {
	var req MemoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	note, err := h.store.Append(r.Context(), req.Key, req.Content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to append memory")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"result": "Memory updated.",
		"id":     note.ID,
	})
}

// Read handles POST /memory/read.
func (h *MemoryHandler) Read(w http.ResponseWriter, r *http.Request) {
	var req MemoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	notes, err := h.store.Read(r.Context(), req.Key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read memory")
		return
	}
	if notes == nil {
		notes = []memory.Note{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}
