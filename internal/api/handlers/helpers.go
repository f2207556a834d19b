// Shared handler helpers: JSON writing, request decoding, and mapping
// dispatch failures onto HTTP status codes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devplanhq/plangate/internal/domain/dispatch"
)

// Dispatcher is the slice of the dispatch core the handlers need.
// Satisfied by *dispatch.Dispatcher; stubbed in tests.
type Dispatcher interface {
	Dispatch(ctx context.Context, req dispatch.Request) (*dispatch.Result, error)
}

// dispatchResponse is the success body shared by all task endpoints.
type dispatchResponse struct {
	Result    string `json:"result"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	LatencyMs int64  `json:"latency_ms"`
	// NeedsClarification is only set by the clarify endpoint.
	NeedsClarification *bool `json:"needs_clarification,omitempty"`
}

// newDispatchResponse builds the shared success body from a result.
func newDispatchResponse(res *dispatch.Result) dispatchResponse {
	return dispatchResponse{
		Result:    res.Text,
		Provider:  string(res.Provider),
		Model:     res.Model,
		LatencyMs: res.LatencyMs,
	}
}

// decodeJSON parses the request body into dst. Returns false (after
// writing a 400) when the body is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDispatchError maps a dispatch failure onto the HTTP taxonomy:
// 400 for bad requests, 503 when the provider is unconfigured, 504 on
// timeout, 502 on transport failure. The failure kind rides along as a
// distinguishing reason code.
func writeDispatchError(w http.ResponseWriter, err error) {
	var f *dispatch.Failure
	if !errors.As(err, &f) {
		writeError(w, http.StatusInternalServerError, "dispatch failed")
		return
	}

	status := http.StatusInternalServerError
	switch f.Kind {
	case dispatch.FailureBadRequest:
		status = http.StatusBadRequest
	case dispatch.FailureNotConfigured:
		status = http.StatusServiceUnavailable
	case dispatch.FailureTimeout:
		status = http.StatusGatewayTimeout
	case dispatch.FailureTransport:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]string{
		"error": f.Detail,
		"kind":  string(f.Kind),
	})
}
