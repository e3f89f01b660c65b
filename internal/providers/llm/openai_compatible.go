package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/protox/internal/core"
)

const (
	defaultTemperature = 0.6
	defaultMaxTokens   = 500
)

type OpenAICompatible struct {
	baseProvider
	path         string
	authHeader   string
	authPrefix   string
	extraHeaders map[string]string
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	Path         string // defaults to /v1/chat/completions
	APIKey       string
	Model        string
	Timeout      time.Duration
	AuthHeader   string // e.g., "Authorization"
	AuthPrefix   string // e.g., "Bearer "
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	path := cfg.Path
	if path == "" {
		path = "/v1/chat/completions"
	}
	return &OpenAICompatible{
		baseProvider: newBaseProvider(strings.TrimRight(cfg.BaseURL, "/"), cfg.APIKey, cfg.Model, cfg.Timeout),
		path:         path,
		authHeader:   cfg.AuthHeader,
		authPrefix:   cfg.AuthPrefix,
		extraHeaders: cfg.ExtraHeaders,
	}
}

func (o *OpenAICompatible) Model() string {
	return o.model
}

// Chat sends a system and a user message and returns the first choice.
func (o *OpenAICompatible) Chat(ctx context.Context, system, user string) (string, error) {
	payload := map[string]any{
		"model": o.model,
		"messages": []core.Message{
			{Role: core.RoleSystem, Content: system},
			{Role: core.RoleUser, Content: user},
		},
		"temperature": defaultTemperature,
		"max_tokens":  defaultMaxTokens,
	}

	headers := make(map[string]string)
	if o.authHeader != "" && o.apiKey != "" {
		headers[o.authHeader] = o.authPrefix + o.apiKey
	}
	for k, v := range o.extraHeaders {
		headers[k] = v
	}
	headers["User-Agent"] = core.UserAgent

	resp, err := o.doRequest(ctx, http.MethodPost, o.path, payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	msg, err := parseOpenAIResponse(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(msg.Content), nil
}

func parseOpenAIResponse(resp *http.Response) (core.Message, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Message{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.Message{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Choices []struct {
			Message core.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.Message{}, fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return core.Message{}, fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Message, nil
}
