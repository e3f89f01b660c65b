package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/protox/internal/config"
	"github.com/sandevgo/protox/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroqClient(baseURL, apiKey string) *Client {
	return newClient(NewGroq(baseURL, apiKey, "", time.Second), ProviderGroq, "Groq", "GROQ_API_KEY", apiKey != "")
}

func TestClient_MissingCredential(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := newGroqClient(server.URL, "")
	res := c.Complete(context.Background(), "sys", "user")

	assert.Equal(t, "(⚠️ Missing GROQ_API_KEY in environment.)", res.Text)
	assert.Equal(t, core.OutcomeDegraded, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrMissingCredential)
	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_RequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload struct {
			Model       string         `json:"model"`
			Temperature float64        `json:"temperature"`
			MaxTokens   int            `json:"max_tokens"`
			Messages    []core.Message `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))

		assert.Equal(t, "llama-3.1-8b-instant", payload.Model)
		assert.Equal(t, 0.6, payload.Temperature)
		assert.Equal(t, 500, payload.MaxTokens)
		assert.Equal(t, []core.Message{
			{Role: core.RoleSystem, Content: "sys"},
			{Role: core.RoleUser, Content: "user"},
		}, payload.Messages)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Hello there!\n"}}]}`))
	}))
	defer server.Close()

	c := newGroqClient(server.URL, "gsk-test")
	res := c.Complete(context.Background(), "sys", "user")

	require.NoError(t, res.Err)
	assert.Equal(t, core.OutcomeOK, res.Outcome)
	assert.Equal(t, "Hello there!", res.Text)
	assert.Equal(t, "Hello there!", c.Generate(context.Background(), "sys", "user"))
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "non-2xx", status: http.StatusTooManyRequests, body: `{"error":"rate limited"}`, wantMsg: "http 429"},
		{name: "malformed body", status: http.StatusOK, body: `{"choices":`, wantMsg: "decode"},
		{name: "empty choices", status: http.StatusOK, body: `{"choices":[]}`, wantMsg: "empty choices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			res := newGroqClient(server.URL, "gsk-test").Complete(context.Background(), "sys", "user")

			assert.Equal(t, core.OutcomeFault, res.Outcome)
			assert.Error(t, res.Err)
			assert.Regexp(t, `^\(Groq error: .*\)$`, res.Text)
			assert.Contains(t, res.Text, tt.wantMsg)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	res := newGroqClient(url, "gsk-test").Complete(context.Background(), "sys", "user")

	assert.Equal(t, core.OutcomeFault, res.Outcome)
	assert.Contains(t, res.Text, "(Groq error: request:")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	provider := NewGroq(server.URL, "gsk-test", "", 50*time.Millisecond)
	c := newClient(provider, ProviderGroq, "Groq", "GROQ_API_KEY", true)

	res := c.Complete(context.Background(), "sys", "user")
	assert.Equal(t, core.OutcomeFault, res.Outcome)
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LLMConfig
		wantName  string
		wantModel string
		wantErr   bool
	}{
		{name: "default groq", cfg: config.LLMConfig{}, wantName: ProviderGroq, wantModel: GroqDefaultModel},
		{name: "model override", cfg: config.LLMConfig{Provider: ProviderGroq, Model: "llama-3.3-70b-versatile"}, wantName: ProviderGroq, wantModel: "llama-3.3-70b-versatile"},
		{name: "openai", cfg: config.LLMConfig{Provider: ProviderOpenAI}, wantName: ProviderOpenAI, wantModel: OpenAIDefaultModel},
		{name: "ollama", cfg: config.LLMConfig{Provider: ProviderOllama}, wantName: ProviderOllama, wantModel: OllamaDefaultModel},
		{name: "anthropic", cfg: config.LLMConfig{Provider: ProviderAnthropic, AnthropicAPIKey: "sk-ant"}, wantName: ProviderAnthropic, wantModel: AnthropicDefaultModel},
		{name: "unknown", cfg: config.LLMConfig{Provider: "bard"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(context.Background(), &tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
			assert.Equal(t, tt.wantModel, c.Model())
		})
	}
}

func TestNewClient_OpenAIMissingKey(t *testing.T) {
	c, err := NewClient(context.Background(), &config.LLMConfig{Provider: ProviderOpenAI})
	require.NoError(t, err)

	assert.Equal(t, "(⚠️ Missing OPENAI_API_KEY in environment.)", c.Generate(context.Background(), "s", "u"))
}
