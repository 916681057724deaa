// Package llm is the external suggestion collaborator: a narrow interface
// over an OpenAI-compatible chat endpoint that receives the formatted change
// report and returns documentation edit suggestions. The scan pipeline works
// fully without it.
package llm

import (
	"context"
	"fmt"

	"github.com/drift-docs/drift-cli/internal/config"
)

// Provider generates documentation-update suggestions from a prompt.
type Provider interface {
	ModelID() string
	Suggest(ctx context.Context, prompt string) (string, error)
}

// Config contains the resolved provider configuration.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// LoadConfig resolves provider config from environment variables first, then
// ~/.drift/.env.
func LoadConfig() (*Config, error) {
	provider, err := config.GetConfigValue("DRIFT_LLM_PROVIDER")
	if err != nil {
		return nil, err
	}
	model, err := config.GetConfigValue("DRIFT_LLM_MODEL")
	if err != nil {
		return nil, err
	}
	apiKey, err := config.GetConfigValue("DRIFT_LLM_API_KEY")
	if err != nil {
		return nil, err
	}
	baseURL, err := config.GetConfigValue("DRIFT_LLM_BASE_URL")
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &Config{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  baseURL,
	}, nil
}

// NewFromConfig returns a suggestion provider.
func NewFromConfig(cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("llm config is nil")
	}
	if cfg.Provider == "" {
		return nil, fmt.Errorf("llm provider is not configured (set DRIFT_LLM_PROVIDER)")
	}
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
