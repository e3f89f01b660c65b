package core

import "context"

type Completer interface {
	Complete(ctx context.Context, system, user string) Completion
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
