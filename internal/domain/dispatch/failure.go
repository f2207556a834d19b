package dispatch

import (
	"github.com/devplanhq/plangate/internal/infra/llm"
)

// FailureKind classifies a dispatch failure for the transport layer.
type FailureKind string

const (
	// FailureBadRequest — unknown task; no provider call was attempted.
	FailureBadRequest FailureKind = "bad_request"
	// FailureNotConfigured — the selected provider has no credential.
	// Not retried, not rerouted.
	FailureNotConfigured FailureKind = "provider_not_configured"
	// FailureTimeout — the provider call exceeded its bound. Retryable by
	// the caller; the gateway itself does not retry.
	FailureTimeout FailureKind = "provider_timeout"
	// FailureTransport — network or protocol failure talking upstream.
	// Retryable by the caller.
	FailureTransport FailureKind = "provider_transport_error"
)

// Failure is a classified dispatch failure, returned as an error value.
// Detail never contains credentials; it carries only what is needed to
// diagnose the call.
type Failure struct {
	Kind     FailureKind
	Provider llm.Provider
	Detail   string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Provider != "" {
		return string(f.Kind) + " (" + string(f.Provider) + "): " + f.Detail
	}
	return string(f.Kind) + ": " + f.Detail
}
