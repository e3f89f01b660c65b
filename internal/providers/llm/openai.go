package llm

import "time"

const (
	OpenAIBaseURL      = "https://api.openai.com"
	OpenAIDefaultModel = "gpt-4o-mini"
)

// OpenAI provider is implemented using OpenAICompatible.
type OpenAI struct {
	*OpenAICompatible
}

func NewOpenAI(baseURL, apiKey, model string, timeout time.Duration) *OpenAI {
	if baseURL == "" {
		baseURL = OpenAIBaseURL
	}
	if model == "" {
		model = OpenAIDefaultModel
	}
	return &OpenAI{
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
