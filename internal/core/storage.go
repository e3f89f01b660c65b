package core

import "context"

// VectorIndex is the nearest-neighbour view of the knowledge collection.
type VectorIndex interface {
	QuerySimilar(ctx context.Context, text string, k int) ([]ContextChunk, error)
	Count() int
}

type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

const MetaSource = "source"

type VectorStore interface {
	VectorIndex
	Reset(ctx context.Context) error
	Add(ctx context.Context, docs []Document) error
	Path() string
}
