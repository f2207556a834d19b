// HTTP handlers for the /repo/* endpoints: search (dispatched to a
// provider), index, and related (served from the local repo index).
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/devplanhq/plangate/internal/domain/dispatch"
	"github.com/devplanhq/plangate/internal/domain/plan"
	"github.com/devplanhq/plangate/internal/domain/repoindex"
)

// RepoIndexer is the slice of the repo index service the handlers need.
type RepoIndexer interface {
	Index(ctx context.Context, files []repoindex.FileContext) (int, error)
	Related(ctx context.Context, target string) ([]string, error)
}

// RepoHandler serves the /repo/* endpoints.
type RepoHandler struct {
	dispatcher Dispatcher
	indexer    RepoIndexer
}

// NewRepoHandler creates a RepoHandler.
func NewRepoHandler(dispatcher Dispatcher, indexer RepoIndexer) *RepoHandler {
	return &RepoHandler{dispatcher: dispatcher, indexer: indexer}
}

// SearchRequest is the request body for POST /repo/search.
type SearchRequest struct {
	Query           string `json:"query"`
	ReasoningEffort string `json:"reasoning_effort,omitempty"`
}

// IndexRequest is the request body for POST /repo/index.
type IndexRequest struct {
	Structure      string                  `json:"structure"`
	ImportantFiles []repoindex.FileContext `json:"important_files"`
}

// RelatedRequest is the request body for POST /repo/related.
type RelatedRequest struct {
	Target string `json:"target"`
}

// Search handles POST /repo/search.
func (h *RepoHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	res, err := h.dispatcher.Dispatch(r.Context(), dispatch.Request{
		Task:      dispatch.TaskSearch,
		Prompt:    plan.Search(req.Query),
		Overrides: dispatch.Overrides{ReasoningEffort: req.ReasoningEffort},
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDispatchResponse(res))
}

// Index handles POST /repo/index.
func (h *RepoHandler) Index(w http.ResponseWriter, r *http.Request) {
	var req IndexRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	count, err := h.indexer.Index(r.Context(), req.ImportantFiles)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to index files")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"result": fmt.Sprintf("Indexed %d files from structure.", count),
	})
}

// Related handles POST /repo/related.
func (h *RepoHandler) Related(w http.ResponseWriter, r *http.Request) {
	var req RelatedRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Target == "" {
		writeError(w, http.StatusBadRequest, "target is required")
		return
	}

	related, err := h.indexer.Related(r.Context(), req.Target)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to look up related files")
		return
	}
	if related == nil {
		related = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"target":  req.Target,
		"related": related,
	})
}
