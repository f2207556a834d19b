// Package config provides application-wide configuration loaded once at
// process start. Values come from three layers: built-in defaults, an
// optional YAML file (PLANGATE_CONFIG), and environment variables. Later
// layers win. Nothing re-reads the environment after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the plangate gateway.
type Config struct {
	// HTTP
	Host string // HOST — default: "0.0.0.0"
	Port int    // PORT — default: 8080

	// Storage
	DBPath string // PLANGATE_DB — default: "plangate.db"

	// Dispatch
	ProviderTimeout time.Duration // PROVIDER_TIMEOUT_SECONDS — default: 60s

	// Auth. Empty means fail closed: the gateway starts and rejects
	// every task request.
	ValidAPIKeys []string // VALID_API_KEYS — comma-separated

	// Provider credentials. Empty means the provider is not configured.
	GeminiAPIKey    string // GEMINI_API_KEY
	AnthropicAPIKey string // ANTHROPIC_API_KEY
	OpenAIAPIKey    string // OPENAI_API_KEY
}

const (
	envKeyConfigFile      = "PLANGATE_CONFIG"
	envKeyHost            = "HOST"
	envKeyPort            = "PORT"
	envKeyDBPath          = "PLANGATE_DB"
	envKeyProviderTimeout = "PROVIDER_TIMEOUT_SECONDS"
	envKeyValidAPIKeys    = "VALID_API_KEYS"
	envKeyGeminiAPIKey    = "GEMINI_API_KEY"
	envKeyAnthropicAPIKey = "ANTHROPIC_API_KEY"
	envKeyOpenAIAPIKey    = "OPENAI_API_KEY"
)

// fileConfig is the shape of the optional YAML config file. Only server
// tuning lives here; credentials are environment-only so they never end up
// in a file checked into a repo.
type fileConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	DBPath                 string `yaml:"db_path"`
	ProviderTimeoutSeconds int    `yaml:"provider_timeout_seconds"`
}

// Load reads configuration from the optional YAML file and the environment,
// applying defaults for missing values. Naming a config file that cannot be
// read or parsed is a fatal configuration error; leaving PLANGATE_CONFIG
// unset is not.
func Load() (Config, error) {
	cfg := Config{
		Host:            "0.0.0.0",
		Port:            8080,
		DBPath:          "plangate.db",
		ProviderTimeout: 60 * time.Second,
	}

	if path := os.Getenv(envKeyConfigFile); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyFile overlays values from the YAML file at path onto cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.ProviderTimeoutSeconds != 0 {
		cfg.ProviderTimeout = time.Duration(fc.ProviderTimeoutSeconds) * time.Second
	}
	return nil
}

// applyEnv overlays environment variables onto cfg. Env always wins over
// the file layer.
func applyEnv(cfg *Config) error {
	cfg.Host = envOr(envKeyHost, cfg.Host)
	cfg.DBPath = envOr(envKeyDBPath, cfg.DBPath)
	cfg.GeminiAPIKey = envOr(envKeyGeminiAPIKey, cfg.GeminiAPIKey)
	cfg.AnthropicAPIKey = envOr(envKeyAnthropicAPIKey, cfg.AnthropicAPIKey)
	cfg.OpenAIAPIKey = envOr(envKeyOpenAIAPIKey, cfg.OpenAIAPIKey)

	if v := os.Getenv(envKeyPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("config: invalid %s %q", envKeyPort, v)
		}
		cfg.Port = port
	}

	if v := os.Getenv(envKeyProviderTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return fmt.Errorf("config: invalid %s %q", envKeyProviderTimeout, v)
		}
		cfg.ProviderTimeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv(envKeyValidAPIKeys); v != "" {
		cfg.ValidAPIKeys = splitKeys(v)
	}

	return nil
}

// splitKeys parses the comma-separated key list, dropping empty entries.
func splitKeys(raw string) []string {
	parts := strings.Split(raw, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
