// HTTP handler for POST /analyze/categorize.
package handlers

import (
	"net/http"

	"github.com/devplanhq/plangate/internal/domain/dispatch"
	"github.com/devplanhq/plangate/internal/domain/plan"
)

// AnalyzeHandler serves the /analyze/* endpoints.
type AnalyzeHandler struct {
	dispatcher Dispatcher
}

// NewAnalyzeHandler creates an AnalyzeHandler over the dispatcher.
func NewAnalyzeHandler(dispatcher Dispatcher) *AnalyzeHandler {
	return &AnalyzeHandler{dispatcher: dispatcher}
}

// CategorizeRequest is the request body for POST /analyze/categorize.
type CategorizeRequest struct {
	FeatureDescription string `json:"feature_description"`
	ReasoningEffort    string `json:"reasoning_effort,omitempty"`
}

// Categorize handles POST /analyze/categorize.
func (h *AnalyzeHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	var req CategorizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.FeatureDescription == "" {
		writeError(w, http.StatusBadRequest, "feature_description is required")
		return
	}

	res, err := h.dispatcher.Dispatch(r.Context(), dispatch.Request{
		Task:      dispatch.TaskCategorize,
		Prompt:    plan.Categorize(req.FeatureDescription),
		Overrides: dispatch.Overrides{ReasoningEffort: req.ReasoningEffort},
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDispatchResponse(res))
}
