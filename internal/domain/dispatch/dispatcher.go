package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/devplanhq/plangate/internal/infra/eventbus"
	"github.com/devplanhq/plangate/internal/infra/llm"
)

// TopicCompleted is the event bus topic for dispatch outcomes.
const TopicCompleted = "dispatch.completed"

// Request is one dispatch call. It is constructed per inbound request and
// never outlives it.
type Request struct {
	Task   Task
	Prompt string
	// Overrides are optional per-call parameter overrides applied on top
	// of the route's defaults.
	Overrides Overrides
}

// Overrides holds the per-call parameter overrides a caller may supply.
type Overrides struct {
	ReasoningEffort string
}

// Result is a successful dispatch: normalized text plus metadata about
// which provider and model serviced the call.
type Result struct {
	Text      string
	Provider  llm.Provider
	Model     string
	LatencyMs int64
}

// CompletedEvent is the payload published on TopicCompleted after every
// dispatch, success or failure. It carries metadata only — never prompt or
// completion content, never credentials.
type CompletedEvent struct {
	Task      Task
	Provider  llm.Provider
	Model     string
	LatencyMs int64
	Outcome   string // "ok" or a FailureKind
}

// Dispatcher resolves tasks to provider calls. All fields are read-only
// after construction, so one Dispatcher serves all concurrent requests.
type Dispatcher struct {
	registry *llm.Registry
	bus      eventbus.EventBus
	timeout  time.Duration
}

// New creates a Dispatcher. timeout bounds each provider invocation.
func New(registry *llm.Registry, bus eventbus.EventBus, timeout time.Duration) *Dispatcher {
	return &Dispatcher{registry: registry, bus: bus, timeout: timeout}
}

// Dispatch runs one request: select the route, invoke the provider, and
// normalize the outcome. There is no cross-provider fallback — the
// selected provider answers or the call fails with a classified *Failure.
// Silently substituting another provider would defeat the per-task policy.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	route, err := Select(req.Task)
	if err != nil {
		f := &Failure{Kind: FailureBadRequest, Detail: err.Error()}
		d.publish(req.Task, "", "", 0, string(f.Kind))
		return nil, f
	}

	params := route.Params
	if req.Overrides.ReasoningEffort != "" {
		params.ReasoningEffort = req.Overrides.ReasoningEffort
	}

	start := time.Now()
	raw, err := d.registry.Invoke(ctx, route.Provider, route.Model, req.Prompt, params, d.timeout)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		f := classify(err, route.Provider)
		d.publish(req.Task, route.Provider, route.Model, latency, string(f.Kind))
		return nil, f
	}

	d.publish(req.Task, route.Provider, route.Model, raw.ProviderLatencyMs, "ok")
	return &Result{
		Text:      raw.Text,
		Provider:  route.Provider,
		Model:     route.Model,
		LatencyMs: raw.ProviderLatencyMs,
	}, nil
}

// classify maps a registry error onto a Failure kind.
func classify(err error, provider llm.Provider) *Failure {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return &Failure{Kind: FailureNotConfigured, Provider: provider, Detail: err.Error()}
	case errors.Is(err, llm.ErrTimeout):
		return &Failure{Kind: FailureTimeout, Provider: provider, Detail: err.Error()}
	default:
		return &Failure{Kind: FailureTransport, Provider: provider, Detail: err.Error()}
	}
}

// publish emits the completion event. Nil bus means no observers (tests).
func (d *Dispatcher) publish(task Task, provider llm.Provider, model string, latencyMs int64, outcome string) {
	if d.bus == nil {
		return
	}
	d.bus.Publish(TopicCompleted, CompletedEvent{
		Task:      task,
		Provider:  provider,
		Model:     model,
		LatencyMs: latencyMs,
		Outcome:   outcome,
	})
}
