package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type LLMConfig struct {
	Provider string        `env:"LLM_PROVIDER" envDefault:"groq"`
	Model    string        `env:"LLM_MODEL"`
	BaseURL  string        `env:"LLM_BASE_URL"`
	Timeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	GroqAPIKey      string `env:"GROQ_API_KEY" secret:"true"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY" secret:"true"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY" secret:"true"`
}

func ParseLLMConfig() (*LLMConfig, error) {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}
