package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const AnthropicDefaultModel = "claude-3-5-haiku-latest"

type Anthropic struct {
	client anthropic.Client
	model  string
}

func NewAnthropic(baseURL, apiKey, model string, timeout time.Duration) *Anthropic {
	if model == "" {
		model = AnthropicDefaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (a *Anthropic) Model() string {
	return a.model
}

func (a *Anthropic) Chat(ctx context.Context, system, user string) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: defaultMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
		Temperature: anthropic.Float(defaultTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("messages: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty content")
	}
	return strings.TrimSpace(text.String()), nil
}
