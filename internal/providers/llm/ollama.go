package llm

import "time"

const (
	OllamaBaseURL      = "http://localhost:11434"
	OllamaDefaultModel = "llama3.1:8b"
)

// Ollama serves the OpenAI chat API locally and needs no key.
type Ollama struct {
	*OpenAICompatible
}

func NewOllama(baseURL, apiKey, model string, timeout time.Duration) *Ollama {
	if baseURL == "" {
		baseURL = OllamaBaseURL
	}
	if model == "" {
		model = OllamaDefaultModel
	}
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			Timeout:    timeout,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
