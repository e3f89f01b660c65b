package rag

import (
	"context"
	"fmt"
	"slices"

	"github.com/dgraph-io/ristretto"
	"github.com/philippgille/chromem-go"
	"github.com/sandevgo/protox/internal/metrics"
)

// CachedEmbedder memoises embeddings by text. Repeated chat questions skip
// the embedding provider entirely.
type CachedEmbedder struct {
	next  chromem.EmbeddingFunc
	cache *ristretto.Cache
}

func NewCachedEmbedder(next chromem.EmbeddingFunc, maxEntries int64) (*CachedEmbedder, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}
	return &CachedEmbedder{next: next, cache: cache}, nil
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.cache.Get(text); ok {
		metrics.EmbeddingCacheHits.Inc()
		return slices.Clone(v.([]float32)), nil
	}
	metrics.EmbeddingCacheMisses.Inc()

	vec, err := c.next(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(text, slices.Clone(vec), 1)
	return vec, nil
}

// Wait blocks until pending cache writes are applied.
func (c *CachedEmbedder) Wait() {
	c.cache.Wait()
}

func (c *CachedEmbedder) Close() error {
	c.cache.Close()
	return nil
}
