package llm

import "time"

const (
	GroqBaseURL      = "https://api.groq.com"
	GroqDefaultModel = "llama-3.1-8b-instant"
)

type Groq struct {
	*OpenAICompatible
}

func NewGroq(baseURL, apiKey, model string, timeout time.Duration) *Groq {
	if baseURL == "" {
		baseURL = GroqBaseURL
	}
	if model == "" {
		model = GroqDefaultModel
	}
	return &Groq{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			Path:       "/openai/v1/chat/completions",
			APIKey:     apiKey,
			Model:      model,
			Timeout:    timeout,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
