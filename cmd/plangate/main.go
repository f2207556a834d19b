// plangate - authenticated dispatch gateway for AI planning providers.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devplanhq/plangate/internal/api"
	"github.com/devplanhq/plangate/internal/domain/auth"
	"github.com/devplanhq/plangate/internal/domain/dispatch"
	"github.com/devplanhq/plangate/internal/domain/health"
	"github.com/devplanhq/plangate/internal/domain/memory"
	"github.com/devplanhq/plangate/internal/domain/repoindex"
	"github.com/devplanhq/plangate/internal/domain/usage"
	"github.com/devplanhq/plangate/internal/infra/config"
	"github.com/devplanhq/plangate/internal/infra/eventbus"
	"github.com/devplanhq/plangate/internal/infra/llm"
	"github.com/devplanhq/plangate/internal/infra/sqlite"
	"github.com/devplanhq/plangate/internal/server"
	"github.com/devplanhq/plangate/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("plangate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	if err := serve(); err != nil {
		log.Printf("fatal: %v", err)
		return 1
	}
	return 0
}

// serve wires the gateway together and blocks until a shutdown signal.
func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := sqlite.MigrateUp(db); err != nil {
		db.Close() //nolint:errcheck
		return fmt.Errorf("migrate database: %w", err)
	}

	gate := auth.NewGate(cfg.ValidAPIKeys)
	registry := llm.NewRegistry(buildClients(cfg))
	log.Printf("providers configured: %d of %d", registry.ConfiguredCount(), len(llm.Providers()))

	bus := eventbus.New()
	dispatcher := dispatch.New(registry, bus, cfg.ProviderTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := usage.NewRecorder(db)
	go recorder.Start(ctx, bus)

	router := api.NewRouter(api.Deps{
		Gate:       gate,
		Dispatcher: dispatcher,
		Health:     health.NewReporter(gate, registry),
		Repo:       repoindex.NewService(db),
		Memory:     memory.NewService(db),
	})

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.Host
	srvCfg.Port = cfg.Port
	srv := server.NewServer(router, db, srvCfg)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildClients creates one provider client per credential present in cfg.
// Providers with no credential are simply absent from the registry.
func buildClients(cfg config.Config) map[llm.Provider]llm.Client {
	clients := make(map[llm.Provider]llm.Client)
	if cfg.GeminiAPIKey != "" {
		clients[llm.ProviderGemini] = llm.NewGeminiClient(cfg.GeminiAPIKey, dispatch.ModelGemini)
	}
	if cfg.AnthropicAPIKey != "" {
		clients[llm.ProviderAnthropic] = llm.NewAnthropicClient(cfg.AnthropicAPIKey, dispatch.ModelAnthropic)
	}
	if cfg.OpenAIAPIKey != "" {
		clients[llm.ProviderOpenAI] = llm.NewOpenAIClient(cfg.OpenAIAPIKey, dispatch.ModelOpenAI)
	}
	return clients
}

func printHelp(out io.Writer) {
	helpText := `plangate - authenticated dispatch gateway for AI planning providers

Usage:
  plangate [options]

Options:
  --version    Show version information
  --help       Show this help message

Environment:
  HOST, PORT                 Listen address (default 0.0.0.0:8080)
  VALID_API_KEYS             Comma-separated client API keys
  GEMINI_API_KEY             Gemini credential
  ANTHROPIC_API_KEY          Anthropic credential
  OPENAI_API_KEY             OpenAI credential
  PROVIDER_TIMEOUT_SECONDS   Per-call provider timeout (default 60)
  PLANGATE_DB                SQLite path for the usage log (default plangate.db)
  PLANGATE_CONFIG            Optional YAML config file

Examples:
  plangate --version
  VALID_API_KEYS=k1,k2 OPENAI_API_KEY=sk-... plangate`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
