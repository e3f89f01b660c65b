package retrieval

import (
	"context"
	"strings"

	"github.com/sandevgo/protox/internal/core"
	"github.com/sandevgo/protox/internal/metrics"
	"github.com/sandevgo/protox/pkg/log"
)

const DefaultTopK = 3

type Retriever struct {
	index core.VectorIndex
	topK  int
}

func NewRetriever(index core.VectorIndex, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{index: index, topK: topK}
}

// Search retrieves the default number of snippets for query.
func (r *Retriever) Search(ctx context.Context, query string) core.Retrieval {
	return r.RetrieveContext(ctx, query, r.topK)
}

// RetrieveContext never fails. Blank queries and an empty collection are
// degraded results, store errors are faults with no chunks.
func (r *Retriever) RetrieveContext(ctx context.Context, query string, k int) core.Retrieval {
	res := r.retrieve(ctx, query, k)
	metrics.Retrievals.WithLabelValues(string(res.Outcome)).Inc()
	return res
}

func (r *Retriever) retrieve(ctx context.Context, query string, k int) core.Retrieval {
	logger := log.FromCtx(log.WithComponent(ctx, "retriever"))

	if strings.TrimSpace(query) == "" || k <= 0 {
		return core.Retrieval{Outcome: core.OutcomeDegraded}
	}

	chunks, err := r.index.QuerySimilar(ctx, query, k)
	if err != nil {
		logger.Warn().Err(err).Msg("context retrieval failed")
		return core.Retrieval{Outcome: core.OutcomeFault, Err: err}
	}
	if len(chunks) == 0 {
		logger.Debug().Msg("no context found, collection is empty")
		return core.Retrieval{Outcome: core.OutcomeDegraded}
	}

	logger.Debug().Int("chunks", len(chunks)).Msg("context retrieved")
	return core.Retrieval{Chunks: chunks, Outcome: core.OutcomeOK}
}
