package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors classified by Registry.Invoke. Callers use errors.Is.
var (
	// ErrNotConfigured means the selected provider has no credential.
	// Invoke fails immediately and never attempts a network call.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrTimeout means the provider call exceeded its bound. The call is
	// abandoned, not retried at this layer.
	ErrTimeout = errors.New("provider call timed out")
)

// Registry holds one Client per configured provider and normalizes their
// responses. Whether a provider is configured is derivable from credential
// presence alone; no network call is made to answer it.
type Registry struct {
	clients map[Provider]Client
}

// NewRegistry creates a Registry from the configured clients. Only
// providers whose credential was present at startup should appear in the
// map. The map is copied so the caller cannot mutate the registry later.
func NewRegistry(clients map[Provider]Client) *Registry {
	cs := make(map[Provider]Client, len(clients))
	for k, v := range clients {
		cs[k] = v
	}
	return &Registry{clients: cs}
}

// Configured reports whether provider has a client (credential present).
func (r *Registry) Configured(provider Provider) bool {
	_, ok := r.clients[provider]
	return ok
}

// ConfiguredCount returns how many providers are configured.
func (r *Registry) ConfiguredCount() int {
	return len(r.clients)
}

// Invoke calls the provider with the given model, prompt, and parameters,
// bounded by timeout. Failures are classified: ErrNotConfigured (no
// credential, no network call attempted), ErrTimeout (bound exceeded), or
// a wrapped transport error. On success the provider-specific response is
// normalized into a RawResponse.
func (r *Registry) Invoke(ctx context.Context, provider Provider, model, prompt string, params GenParams, timeout time.Duration) (*RawResponse, error) {
	client, ok := r.clients[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, provider)
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Generate(callCtx, GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Params: params,
	})
	elapsed := time.Since(start)

	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s after %s", ErrTimeout, provider, timeout)
		}
		// Transport or protocol failure. The wrapped error never contains
		// the credential; adapters only embed status codes and bodies.
		return nil, fmt.Errorf("provider %s: %w", provider, err)
	}

	return &RawResponse{
		Text:              resp.Text,
		ProviderLatencyMs: elapsed.Milliseconds(),
	}, nil
}
