// HTTP handlers for the planning endpoints: clarify, prd, blueprint, tasks.
package handlers

import (
	"net/http"

	"github.com/devplanhq/plangate/internal/domain/dispatch"
	"github.com/devplanhq/plangate/internal/domain/plan"
)

// PlanHandler serves the /plan/* endpoints.
type PlanHandler struct {
	dispatcher Dispatcher
}

// NewPlanHandler creates a PlanHandler over the dispatcher.
func NewPlanHandler(dispatcher Dispatcher) *PlanHandler {
	return &PlanHandler{dispatcher: dispatcher}
}

// ClarifyRequest is the request body for POST /plan/clarify.
type ClarifyRequest struct {
	Goal            string `json:"goal"`
	CodebaseContext string `json:"codebase_context"`
	ReasoningEffort string `json:"reasoning_effort,omitempty"`
}

// PRDRequest is the request body for POST /plan/prd.
type PRDRequest struct {
	Goal              string `json:"goal"`
	CodebaseContext   string `json:"codebase_context"`
	AdditionalContext string `json:"additional_context"`
	ReasoningEffort   string `json:"reasoning_effort,omitempty"`
}

// BlueprintRequest is the request body for POST /plan/blueprint.
type BlueprintRequest struct {
	PRDContent        string `json:"prd_content"`
	CodebaseContext   string `json:"codebase_context"`
	AdditionalContext string `json:"additional_context"`
	ReasoningEffort   string `json:"reasoning_effort,omitempty"`
}

// TasksRequest is the request body for POST /plan/tasks.
type TasksRequest struct {
	BlueprintContent  string `json:"blueprint_content"`
	AdditionalContext string `json:"additional_context"`
	ReasoningEffort   string `json:"reasoning_effort,omitempty"`
}

// Clarify handles POST /plan/clarify.
func (h *PlanHandler) Clarify(w http.ResponseWriter, r *http.Request) {
	var req ClarifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Goal == "" {
		writeError(w, http.StatusBadRequest, "goal is required")
		return
	}

	res, err := h.dispatcher.Dispatch(r.Context(), dispatch.Request{
		Task:      dispatch.TaskClarify,
		Prompt:    plan.Clarify(req.Goal, req.CodebaseContext),
		Overrides: dispatch.Overrides{ReasoningEffort: req.ReasoningEffort},
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}

	body := newDispatchResponse(res)
	needs := plan.NeedsClarification(res.Text)
	body.NeedsClarification = &needs
	writeJSON(w, http.StatusOK, body)
}

// PRD handles POST /plan/prd.
func (h *PlanHandler) PRD(w http.ResponseWriter, r *http.Request) {
	var req PRDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Goal == "" {
		writeError(w, http.StatusBadRequest, "goal is required")
		return
	}

	res, err := h.dispatcher.Dispatch(r.Context(), dispatch.Request{
		Task:      dispatch.TaskPRD,
		Prompt:    plan.PRD(req.Goal, req.CodebaseContext, req.AdditionalContext),
		Overrides: dispatch.Overrides{ReasoningEffort: req.ReasoningEffort},
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDispatchResponse(res))
}

// Blueprint handles POST /plan/blueprint.
func (h *PlanHandler) Blueprint(w http.ResponseWriter, r *http.Request) {
	var req BlueprintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PRDContent == "" {
		writeError(w, http.StatusBadRequest, "prd_content is required")
		return
	}

	res, err := h.dispatcher.Dispatch(r.Context(), dispatch.Request{
		Task:      dispatch.TaskBlueprint,
		Prompt:    plan.Blueprint(req.PRDContent, req.CodebaseContext, req.AdditionalContext),
		Overrides: dispatch.Overrides{ReasoningEffort: req.ReasoningEffort},
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDispatchResponse(res))
}

// Tasks handles POST /plan/tasks.
func (h *PlanHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	var req TasksRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.BlueprintContent == "" {
		writeError(w, http.StatusBadRequest, "blueprint_content is required")
		return
	}

	res, err := h.dispatcher.Dispatch(r.Context(), dispatch.Request{
		Task:      dispatch.TaskTasks,
		Prompt:    plan.Tasks(req.BlueprintContent, req.AdditionalContext),
		Overrides: dispatch.Overrides{ReasoningEffort: req.ReasoningEffort},
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDispatchResponse(res))
}
