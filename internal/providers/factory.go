package providers

import (
	"fmt"
)

// Settings is the provider-independent part of the factory input.
type Settings struct {
	Provider string // gemini, openai, anthropic, groq, deepseek
	APIKey   string
	Model    string
	BaseURL  string // Optional override for OpenAI-compatible endpoints
}

// New creates a Client for the configured provider. Gemini is the default
// and uses the native REST surface; the remaining names route through the
// OpenAI-compatible or Anthropic SDK clients.
func New(s Settings) (Client, error) {
	switch s.Provider {
	case "", "gemini":
		return NewGeminiClient(GeminiConfig{APIKey: s.APIKey, Model: s.Model})

	case "openai":
		model := s.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		return NewOpenAIClient(s.APIKey, model, s.BaseURL)

	case "anthropic":
		model := s.Model
		if model == "" {
			model = "claude-3-5-sonnet-20241022"
		}
		return NewAnthropicClient(s.APIKey, model)

	case "groq":
		model := s.Model
		if model == "" {
			model = "llama-3.1-70b-versatile"
		}
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "https://api.groq.com/openai/v1"
		}
		return NewOpenAIClient(s.APIKey, model, baseURL)

	case "deepseek":
		model := s.Model
		if model == "" {
			model = "deepseek-chat"
		}
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "https://api.deepseek.com/v1"
		}
		return NewOpenAIClient(s.APIKey, model, baseURL)

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: gemini, openai, anthropic, groq, deepseek)", s.Provider)
	}
}
