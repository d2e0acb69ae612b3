package config

import (
	"strings"
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PONDER_PROVIDER", "PONDER_MODEL", "PONDER_BASE_URL", "PONDER_MAX_RETRIES",
		"PONDER_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"GROQ_API_KEY", "DEEPSEEK_API_KEY",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearProviderEnv(t)

	cfg := Load()

	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Provider)
	}
	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, DefaultMaxRetries)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.HistoryPath != "ponder_history.db" {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadMaxRetriesOverride(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("PONDER_MAX_RETRIES", "5")

	if cfg := Load(); cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
}

func TestLoadMalformedMaxRetriesKeepsDefault(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("PONDER_MAX_RETRIES", "lots")

	if cfg := Load(); cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, DefaultMaxRetries)
	}
}

func TestAPIKeyResolution(t *testing.T) {
	t.Run("provider specific key wins", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("PONDER_PROVIDER", "openai")
		t.Setenv("OPENAI_API_KEY", "sk-specific")
		t.Setenv("PONDER_API_KEY", "generic")

		if cfg := Load(); cfg.APIKey != "sk-specific" {
			t.Errorf("APIKey = %q, want sk-specific", cfg.APIKey)
		}
	})

	t.Run("generic key as fallback", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("PONDER_API_KEY", "generic")

		if cfg := Load(); cfg.APIKey != "generic" {
			t.Errorf("APIKey = %q, want generic", cfg.APIKey)
		}
	})
}

func TestValidateMissingKey(t *testing.T) {
	cfg := &Config{Provider: "gemini"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate accepted an empty API key")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("error does not name the variable to set: %v", err)
	}
}

func TestValidateNegativeRetries(t *testing.T) {
	cfg := &Config{Provider: "gemini", APIKey: "k", MaxRetries: -1}

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate accepted negative MaxRetries")
	}
}

func TestValidateOK(t *testing.T) {
	cfg := &Config{Provider: "anthropic", APIKey: "k", MaxRetries: 0}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}
