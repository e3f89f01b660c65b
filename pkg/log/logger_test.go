package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithWriter_LogsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithWriter(context.Background(), &buf)

	FromCtx(ctx).Info().Str("key", "value").Msg("hello")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "key=value")
}

func TestWithComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithComponent(WithWriter(context.Background(), &buf), "retriever")

	FromCtx(ctx).Warn().Msg("collection empty")

	assert.Contains(t, buf.String(), "component=retriever")
}

func TestFromCtx_WithoutLogger(t *testing.T) {
	// zerolog falls back to the disabled logger, which must not panic.
	assert.NotPanics(t, func() {
		FromCtx(context.Background()).Info().Msg("dropped")
	})
}
