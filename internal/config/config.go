// Package config holds the explicit configuration struct the rest of the
// program is constructed from. Values come from the environment (main loads
// .env via godotenv first); nothing else reads process-wide state.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultMaxRetries is the number of additional attempts after the first
// when PONDER_MAX_RETRIES is unset.
const DefaultMaxRetries = 2

// Config is passed to the constructors of the agent, history and web layers.
type Config struct {
	Provider    string // gemini (default), openai, anthropic, groq, deepseek
	APIKey      string
	Model       string
	BaseURL     string // Optional override for OpenAI-compatible endpoints
	MaxRetries  int
	ListenAddr  string
	HistoryPath string // SQLite file; the bleve index lives alongside it
	ResultsPath string // Bench results JSON file
	LogLevel    string
}

// Load reads configuration from the environment and applies defaults.
func Load() *Config {
	cfg := &Config{
		Provider:    getenv("PONDER_PROVIDER", "gemini"),
		Model:       os.Getenv("PONDER_MODEL"),
		BaseURL:     os.Getenv("PONDER_BASE_URL"),
		MaxRetries:  DefaultMaxRetries,
		ListenAddr:  getenv("PONDER_LISTEN_ADDR", ":8080"),
		HistoryPath: getenv("PONDER_HISTORY_PATH", "ponder_history.db"),
		ResultsPath: getenv("PONDER_RESULTS_PATH", "test_results.json"),
		LogLevel:    getenv("PONDER_LOG_LEVEL", "info"),
	}

	cfg.APIKey = apiKeyFromEnv(cfg.Provider)

	if v := os.Getenv("PONDER_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}

	return cfg
}

// Validate reports the fatal startup conditions. A missing credential is the
// only error the program refuses to start without.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s not set; export it or add it to .env", keyEnvVar(c.Provider))
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got %d", c.MaxRetries)
	}
	return nil
}

// apiKeyFromEnv resolves the credential for the chosen provider, preferring
// the provider-specific variable over the generic one.
func apiKeyFromEnv(provider string) string {
	if key := os.Getenv(keyEnvVar(provider)); key != "" {
		return key
	}
	return os.Getenv("PONDER_API_KEY")
}

func keyEnvVar(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "groq":
		return "GROQ_API_KEY"
	case "deepseek":
		return "DEEPSEEK_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
