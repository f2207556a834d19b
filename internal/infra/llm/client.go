package llm

import "context"

// Client is the single capability every provider adapter exposes. The
// gateway never talks to a vendor SDK directly; it always goes through the
// Registry, which holds one Client per configured provider.
type Client interface {
	// Generate performs a non-streaming text generation call.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Provider returns the identity of the backend this client talks to.
	Provider() Provider
}
