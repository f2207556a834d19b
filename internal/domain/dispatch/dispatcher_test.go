package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devplanhq/plangate/internal/infra/eventbus"
	"github.com/devplanhq/plangate/internal/infra/llm"
)

// countingClient is an llm.Client stub that records invocations.
type countingClient struct {
	provider llm.Provider
	text     string
	err      error
	calls    int
}

func (c *countingClient) Provider() llm.Provider { return c.provider }

func (c *countingClient) Generate(_ context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &llm.GenerateResponse{Text: c.text}, nil
}

// fullRegistry returns a registry with all three providers stubbed.
func fullRegistry(text string) (*llm.Registry, map[llm.Provider]*countingClient) {
	stubs := map[llm.Provider]*countingClient{
		llm.ProviderGemini:    {provider: llm.ProviderGemini, text: text},
		llm.ProviderAnthropic: {provider: llm.ProviderAnthropic, text: text},
		llm.ProviderOpenAI:    {provider: llm.ProviderOpenAI, text: text},
	}
	clients := make(map[llm.Provider]llm.Client, len(stubs))
	for p, s := range stubs {
		clients[p] = s
	}
	return llm.NewRegistry(clients), stubs
}

func TestDispatch_Success(t *testing.T) {
	t.Parallel()

	registry, stubs := fullRegistry("OK")
	d := New(registry, nil, time.Second)

	res, err := d.Dispatch(context.Background(), Request{Task: TaskPRD, Prompt: "write a prd"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if res.Text != "OK" {
		t.Errorf("expected normalized text OK, got %q", res.Text)
	}
	if res.Provider != llm.ProviderOpenAI || res.Model == "" {
		t.Errorf("expected openai route metadata, got %+v", res)
	}
	if stubs[llm.ProviderOpenAI].calls != 1 {
		t.Errorf("expected one openai call, got %d", stubs[llm.ProviderOpenAI].calls)
	}
	if stubs[llm.ProviderGemini].calls != 0 || stubs[llm.ProviderAnthropic].calls != 0 {
		t.Error("unselected providers must not be invoked")
	}
}

func TestDispatch_UnknownTask_BadRequest_NoProviderCall(t *testing.T) {
	t.Parallel()

	registry, stubs := fullRegistry("OK")
	d := New(registry, nil, time.Second)

	_, err := d.Dispatch(context.Background(), Request{Task: "nonexistent-task", Prompt: "x"})
	var f *Failure
	if !errors.As(err, &f) || f.Kind != FailureBadRequest {
		t.Fatalf("expected FailureBadRequest, got %v", err)
	}
	for p, s := range stubs {
		if s.calls != 0 {
			t.Errorf("provider %s was invoked for an unknown task", p)
		}
	}
}

func TestDispatch_UnconfiguredProvider_NoFallback(t *testing.T) {
	t.Parallel()

	// Only gemini configured; prd routes to openai.
	gemini := &countingClient{provider: llm.ProviderGemini, text: "OK"}
	registry := llm.NewRegistry(map[llm.Provider]llm.Client{llm.ProviderGemini: gemini})
	d := New(registry, nil, time.Second)

	_, err := d.Dispatch(context.Background(), Request{Task: TaskPRD, Prompt: "x"})
	var f *Failure
	if !errors.As(err, &f) || f.Kind != FailureNotConfigured {
		t.Fatalf("expected FailureNotConfigured, got %v", err)
	}
	if f.Provider != llm.ProviderOpenAI {
		t.Errorf("failure should name the selected provider, got %s", f.Provider)
	}
	// No silent rerouting to the configured provider.
	if gemini.calls != 0 {
		t.Errorf("expected no fallback call to gemini, got %d", gemini.calls)
	}
}

func TestDispatch_TransportError_Classified(t *testing.T) {
	t.Parallel()

	broken := &countingClient{provider: llm.ProviderOpenAI, err: errors.New("connection reset")}
	registry := llm.NewRegistry(map[llm.Provider]llm.Client{llm.ProviderOpenAI: broken})
	d := New(registry, nil, time.Second)

	_, err := d.Dispatch(context.Background(), Request{Task: TaskTasks, Prompt: "x"})
	var f *Failure
	if !errors.As(err, &f) || f.Kind != FailureTransport {
		t.Fatalf("expected FailureTransport, got %v", err)
	}
}

func TestDispatch_OverrideReasoningEffort(t *testing.T) {
	t.Parallel()

	var gotEffort string
	recording := &effortRecordingClient{provider: llm.ProviderGemini, effort: &gotEffort}
	registry := llm.NewRegistry(map[llm.Provider]llm.Client{llm.ProviderGemini: recording})
	d := New(registry, nil, time.Second)

	_, err := d.Dispatch(context.Background(), Request{
		Task:      TaskCategorize,
		Prompt:    "x",
		Overrides: Overrides{ReasoningEffort: llm.EffortHigh},
	})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if gotEffort != llm.EffortHigh {
		t.Errorf("expected override to raise effort to high, got %q", gotEffort)
	}
}

type effortRecordingClient struct {
	provider llm.Provider
	effort   *string
}

func (c *effortRecordingClient) Provider() llm.Provider { return c.provider }

func (c *effortRecordingClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	*c.effort = req.Params.ReasoningEffort
	return &llm.GenerateResponse{Text: "ok"}, nil
}

func TestDispatch_PublishesCompletedEvent(t *testing.T) {
	t.Parallel()

	registry, _ := fullRegistry("OK")
	bus := eventbus.New()
	events := bus.Subscribe(TopicCompleted)
	d := New(registry, bus, time.Second)

	if _, err := d.Dispatch(context.Background(), Request{Task: TaskSearch, Prompt: "find auth code"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	select {
	case evt := <-events:
		ce, ok := evt.Payload.(CompletedEvent)
		if !ok {
			t.Fatalf("unexpected payload type %T", evt.Payload)
		}
		if ce.Task != TaskSearch || ce.Provider != llm.ProviderGemini || ce.Outcome != "ok" {
			t.Errorf("unexpected event: %+v", ce)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for completion event")
	}
}
