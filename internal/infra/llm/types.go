// Package llm holds the provider-agnostic text-generation abstraction.
// Adapters (Gemini, Anthropic, OpenAI) implement the Client interface and
// the Registry hides which vendor is behind each call: everything above it
// sees one request shape and one response shape.
package llm

// Provider identifies a text-generation backend. The set is closed and
// known at build time; there is no dynamic registration.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// Providers returns the closed set of supported providers in stable order.
func Providers() []Provider {
	return []Provider{ProviderGemini, ProviderAnthropic, ProviderOpenAI}
}

// Reasoning effort levels understood by the adapters. Each adapter maps
// these onto its vendor's knob (thinking level, thinking budget,
// reasoning_effort) and ignores the empty string.
const (
	EffortLow  = "low"
	EffortHigh = "high"
)

// GenParams are the generation parameters carried by a route or a per-call
// override.
type GenParams struct {
	Temperature     float32
	MaxTokens       int
	ReasoningEffort string // "", EffortLow, or EffortHigh
}

// GenerateRequest is the input for a single non-streaming generation call.
type GenerateRequest struct {
	// Model overrides the adapter default when non-empty.
	Model  string
	Prompt string
	Params GenParams
}

// GenerateResponse is an adapter's raw output before Registry normalization.
type GenerateResponse struct {
	Text   string
	Tokens int // total tokens consumed, 0 when the vendor omits usage
}

// RawResponse is the normalized provider output returned by the Registry.
// This is the single seam where provider heterogeneity is hidden.
type RawResponse struct {
	Text              string
	ProviderLatencyMs int64
}
