package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/protox/internal/core"
	"github.com/sandevgo/protox/internal/metrics"
	"github.com/sandevgo/protox/pkg/log"
)

var ErrMissingCredential = errors.New("missing api key")

type chatProvider interface {
	Chat(ctx context.Context, system, user string) (string, error)
	Model() string
}

// Client turns provider calls into replies that are always safe to show to
// the user. Failures come back as a bracketed notice instead of an error.
type Client struct {
	provider chatProvider
	name     string
	label    string
	keyEnv   string
	hasKey   bool
}

func newClient(provider chatProvider, name, label, keyEnv string, hasKey bool) *Client {
	return &Client{
		provider: provider,
		name:     name,
		label:    label,
		keyEnv:   keyEnv,
		hasKey:   hasKey,
	}
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) Model() string {
	return c.provider.Model()
}

func (c *Client) Complete(ctx context.Context, system, user string) core.Completion {
	logger := log.FromCtx(ctx)

	if !c.hasKey {
		logger.Warn().Str("provider", c.name).Msg("completion skipped, no credential configured")
		metrics.Completions.WithLabelValues(c.name, string(core.OutcomeDegraded)).Inc()
		return core.Completion{
			Text:    fmt.Sprintf("(⚠️ Missing %s in environment.)", c.keyEnv),
			Outcome: core.OutcomeDegraded,
			Err:     ErrMissingCredential,
		}
	}

	text, err := c.provider.Chat(ctx, system, user)
	if err != nil {
		logger.Error().Err(err).Str("provider", c.name).Str("model", c.provider.Model()).Msg("completion failed")
		metrics.Completions.WithLabelValues(c.name, string(core.OutcomeFault)).Inc()
		return core.Completion{
			Text:    fmt.Sprintf("(%s error: %v)", c.label, err),
			Outcome: core.OutcomeFault,
			Err:     err,
		}
	}

	metrics.Completions.WithLabelValues(c.name, string(core.OutcomeOK)).Inc()
	return core.Completion{Text: text, Outcome: core.OutcomeOK}
}

func (c *Client) Generate(ctx context.Context, system, user string) string {
	return c.Complete(ctx, system, user).Text
}
