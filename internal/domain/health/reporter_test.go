package health

import (
	"context"
	"testing"

	"github.com/devplanhq/plangate/internal/domain/auth"
	"github.com/devplanhq/plangate/internal/infra/llm"
)

type nopClient struct{ provider llm.Provider }

func (c *nopClient) Provider() llm.Provider { return c.provider }
func (c *nopClient) Generate(_ context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	return &llm.GenerateResponse{Text: "ok"}, nil
}

func TestSnapshot_ReflectsConfigurationState(t *testing.T) {
	t.Parallel()

	gate := auth.NewGate([]string{"k1", "k2"})
	registry := llm.NewRegistry(map[llm.Provider]llm.Client{
		llm.ProviderGemini: &nopClient{provider: llm.ProviderGemini},
	})
	r := NewReporter(gate, registry)

	snap := r.Snapshot()
	if snap.Status != "ok" {
		t.Errorf("expected status ok, got %q", snap.Status)
	}
	if !snap.AIProviders["gemini"] {
		t.Error("expected gemini configured")
	}
	if snap.AIProviders["anthropic"] || snap.AIProviders["openai"] {
		t.Error("expected anthropic and openai unconfigured")
	}
	if snap.ValidAPIKeyCount != 2 {
		t.Errorf("expected key count 2, got %d", snap.ValidAPIKeyCount)
	}
	if snap.Version == "" {
		t.Error("expected version in snapshot")
	}
}

func TestSnapshot_EmptyConfiguration(t *testing.T) {
	t.Parallel()

	r := NewReporter(auth.NewGate(nil), llm.NewRegistry(nil))
	snap := r.Snapshot()

	if snap.ValidAPIKeyCount != 0 {
		t.Errorf("expected key count 0, got %d", snap.ValidAPIKeyCount)
	}
	// Every provider in the closed set appears, all unconfigured.
	if len(snap.AIProviders) != len(llm.Providers()) {
		t.Errorf("expected %d provider flags, got %d", len(llm.Providers()), len(snap.AIProviders))
	}
	for name, configured := range snap.AIProviders {
		if configured {
			t.Errorf("expected %s unconfigured", name)
		}
	}
	// Health must still report ok: diagnosable even with no keys.
	if snap.Status != "ok" {
		t.Errorf("expected status ok with empty configuration, got %q", snap.Status)
	}
}
