package chromem

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"github.com/sandevgo/protox/internal/core"
	"github.com/sandevgo/protox/pkg/log"
)

var collectionMetadata = map[string]string{"hnsw:space": "cosine"}

// Store is a single persistent chromem collection.
type Store struct {
	db    *chromem.DB
	embed chromem.EmbeddingFunc
	name  string
	path  string

	mu  sync.RWMutex
	col *chromem.Collection
}

func Open(ctx context.Context, path, name string, embed chromem.EmbeddingFunc) (*Store, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create vector store directory: %w", err)
	}

	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector store: %w", err)
	}

	col, err := db.GetOrCreateCollection(name, collectionMetadata, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection %s: %w", name, err)
	}

	log.FromCtx(ctx).Debug().
		Str("path", path).
		Str("collection", name).
		Int("count", col.Count()).
		Msg("vector store opened")

	return &Store{
		db:    db,
		embed: embed,
		name:  name,
		path:  path,
		col:   col,
	}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.col.Count()
}

// QuerySimilar returns up to k entries ordered by cosine similarity.
// An empty collection yields no results.
func (s *Store) QuerySimilar(ctx context.Context, text string, k int) ([]core.ContextChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(k, s.col.Count())
	if n <= 0 {
		return nil, nil
	}

	results, err := s.col.Query(ctx, text, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.name, err)
	}

	chunks := make([]core.ContextChunk, 0, len(results))
	for _, r := range results {
		chunks = append(chunks, core.ContextChunk{
			Source: r.Metadata[core.MetaSource],
			Text:   r.Content,
		})
	}
	return chunks, nil
}

// Reset drops every entry by deleting and recreating the collection.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("delete collection %s: %w", s.name, err)
	}
	col, err := s.db.GetOrCreateCollection(s.name, collectionMetadata, s.embed)
	if err != nil {
		return fmt.Errorf("recreate collection %s: %w", s.name, err)
	}
	s.col = col

	log.FromCtx(ctx).Debug().Str("collection", s.name).Msg("collection reset")
	return nil
}

func (s *Store) Add(ctx context.Context, docs []core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	batch := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, chromem.Document{
			ID:       d.ID,
			Content:  d.Content,
			Metadata: d.Metadata,
		})
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.col.AddDocuments(ctx, batch, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents to %s: %w", s.name, err)
	}
	return nil
}
