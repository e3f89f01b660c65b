package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/protox/internal/config"
	"github.com/sandevgo/protox/pkg/log"
)

const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
)

// NewClient creates the completion client for the configured provider.
func NewClient(ctx context.Context, cfg *config.LLMConfig) (*Client, error) {
	var c *Client
	switch cfg.Provider {
	case ProviderGroq, "":
		c = newClient(NewGroq(cfg.BaseURL, cfg.GroqAPIKey, cfg.Model, cfg.Timeout),
			ProviderGroq, "Groq", "GROQ_API_KEY", cfg.GroqAPIKey != "")
	case ProviderOpenAI:
		c = newClient(NewOpenAI(cfg.BaseURL, cfg.OpenAIAPIKey, cfg.Model, cfg.Timeout),
			ProviderOpenAI, "OpenAI", "OPENAI_API_KEY", cfg.OpenAIAPIKey != "")
	case ProviderOllama:
		c = newClient(NewOllama(cfg.BaseURL, cfg.OpenAIAPIKey, cfg.Model, cfg.Timeout),
			ProviderOllama, "Ollama", "", true)
	case ProviderAnthropic:
		c = newClient(NewAnthropic(cfg.BaseURL, cfg.AnthropicAPIKey, cfg.Model, cfg.Timeout),
			ProviderAnthropic, "Anthropic", "ANTHROPIC_API_KEY", cfg.AnthropicAPIKey != "")
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}

	log.FromCtx(ctx).Info().
		Str("provider", c.Name()).
		Str("model", c.Model()).
		Msg("starting llm provider")

	return c, nil
}
