package rag

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
	"github.com/sandevgo/protox/internal/config"
	"github.com/sandevgo/protox/pkg/log"
	"github.com/sandevgo/protox/pkg/retry"
)

const (
	ProviderHash   = "hash"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	OllamaEmbeddingURL   = "http://localhost:11434/api"
	OllamaEmbeddingModel = "nomic-embed-text"
	OpenAIEmbeddingURL   = "https://api.openai.com/v1"
	OpenAIEmbeddingModel = "text-embedding-3-small"
)

// NewEmbeddingFunc returns the embedding function used by the vector store,
// wrapped in a query cache when cacheEntries is positive.
func NewEmbeddingFunc(ctx context.Context, cfg *config.RAGConfig) (chromem.EmbeddingFunc, func() error, error) {
	var fn chromem.EmbeddingFunc
	model := cfg.EmbeddingModel
	baseURL := cfg.EmbeddingBaseURL

	switch cfg.EmbeddingProvider {
	case ProviderHash, "":
		fn = NewHashEmbedder(DefaultHashDims).Embed
		model = "fnv-bow"
	case ProviderOllama:
		if model == "" {
			model = OllamaEmbeddingModel
		}
		if baseURL == "" {
			baseURL = OllamaEmbeddingURL
		}
		fn = withRetry(chromem.NewEmbeddingFuncOllama(model, baseURL), retry.NewPolicy(cfg.EmbeddingAttempts))
	case ProviderOpenAI:
		if model == "" {
			model = OpenAIEmbeddingModel
		}
		if baseURL == "" {
			baseURL = OpenAIEmbeddingURL
		}
		fn = withRetry(chromem.NewEmbeddingFuncOpenAICompat(baseURL, cfg.EmbeddingAPIKey, model, nil), retry.NewPolicy(cfg.EmbeddingAttempts))
	default:
		return nil, nil, fmt.Errorf("unknown embedding provider: %s", cfg.EmbeddingProvider)
	}

	log.FromCtx(ctx).Info().
		Str("provider", cfg.EmbeddingProvider).
		Str("model", model).
		Int64("cache_entries", cfg.EmbeddingCache).
		Msg("starting embedding provider")

	if cfg.EmbeddingCache <= 0 {
		return fn, func() error { return nil }, nil
	}

	cached, err := NewCachedEmbedder(fn, cfg.EmbeddingCache)
	if err != nil {
		return nil, nil, err
	}
	return cached.Embed, cached.Close, nil
}

// withRetry wraps a remote embedding call in p.
func withRetry(fn chromem.EmbeddingFunc, p retry.Policy) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		var vec []float32
		err := retry.Do(ctx, p, func(ctx context.Context) error {
			v, err := fn(ctx, text)
			if err != nil {
				log.FromCtx(ctx).Debug().Err(err).Msg("embedding attempt failed")
				return err
			}
			vec = v
			return nil
		})
		return vec, err
	}
}
