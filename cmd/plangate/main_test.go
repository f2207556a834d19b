package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/devplanhq/plangate/internal/infra/config"
	"github.com/devplanhq/plangate/internal/infra/llm"
)

func configWith(gemini, anthropic, openai string) config.Config {
	return config.Config{
		GeminiAPIKey:    gemini,
		AnthropicAPIKey: anthropic,
		OpenAIAPIKey:    openai,
	}
}

func TestRun_Version_PrintsVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := run([]string{"--version"}, &out)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "plangate version") {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestRun_Help_PrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := run([]string{"--help"}, &out)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected help output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "VALID_API_KEYS") {
		t.Fatalf("expected environment docs in help, got %q", out.String())
	}
}

func TestRun_InvalidFlag_Returns2(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := run([]string{"--unknown-flag"}, &out)

	if code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestBuildClients_OnlyPresentCredentials(t *testing.T) {
	t.Parallel()

	clients := buildClients(configWith("", "sk-ant", ""))
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if _, ok := clients[llm.ProviderAnthropic]; !ok {
		t.Fatal("expected anthropic client to be configured")
	}
}

func TestBuildClients_NoCredentials_EmptyRegistry(t *testing.T) {
	t.Parallel()

	clients := buildClients(configWith("", "", ""))
	if len(clients) != 0 {
		t.Fatalf("expected no clients, got %d", len(clients))
	}
}
