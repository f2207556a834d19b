// Package health aggregates provider configuration state and credential
// count into a point-in-time snapshot. It reads presence and counts only —
// never key material, never the network.
package health

import (
	"github.com/devplanhq/plangate/internal/domain/auth"
	"github.com/devplanhq/plangate/internal/infra/llm"
	"github.com/devplanhq/plangate/internal/version"
)

// Snapshot is the health report served at /health. Field names are part of
// the HTTP contract.
type Snapshot struct {
	Status           string          `json:"status"`
	AIProviders      map[string]bool `json:"ai_providers"`
	ValidAPIKeyCount int             `json:"valid_api_keys_count"`
	Version          string          `json:"version"`
}

// Reporter computes health snapshots. Read-only dependencies, safe for
// concurrent use.
type Reporter struct {
	gate     *auth.Gate
	registry *llm.Registry
}

// NewReporter creates a Reporter over the gate and provider registry.
func NewReporter(gate *auth.Gate, registry *llm.Registry) *Reporter {
	return &Reporter{gate: gate, registry: registry}
}

// Snapshot recomputes the health view. O(number of providers), no network
// calls, never cached; each query sees the current state.
func (r *Reporter) Snapshot() Snapshot {
	providers := make(map[string]bool, len(llm.Providers()))
	for _, p := range llm.Providers() {
		providers[string(p)] = r.registry.Configured(p)
	}
	return Snapshot{
		Status:           "ok",
		AIProviders:      providers,
		ValidAPIKeyCount: r.gate.KeyCount(),
		Version:          version.Version,
	}
}
