package chat

import (
	"context"
	"strings"

	"github.com/sandevgo/protox/internal/core"
	"github.com/sandevgo/protox/internal/metrics"
	"github.com/sandevgo/protox/internal/service/prompt"
	"github.com/sandevgo/protox/pkg/log"
)

type Retriever interface {
	Search(ctx context.Context, query string) core.Retrieval
}

type Request struct {
	Message        string
	Memory         string
	Tone           string
	Lang           string
	PreferHinglish bool
}

type Reply struct {
	Text       string
	Completion core.Outcome
	Retrieval  core.Outcome
	Facts      map[string]string
}

type Pipeline struct {
	retriever Retriever
	completer core.Completer
	memory    core.FactMemory
}

// NewPipeline wires one chat turn. A nil memory leaves fact tracking to the
// caller, only request supplied memory is used then.
func NewPipeline(retriever Retriever, completer core.Completer, memory core.FactMemory) *Pipeline {
	return &Pipeline{
		retriever: retriever,
		completer: completer,
		memory:    memory,
	}
}

func (p *Pipeline) Chat(ctx context.Context, req Request) Reply {
	logger := log.FromCtx(log.WithComponent(ctx, "chat"))

	retrieval := p.retriever.Search(ctx, req.Message)

	var facts map[string]string
	memParts := []string{req.Memory}
	if p.memory != nil {
		var err error
		if facts, err = p.memory.UpdateFromText(req.Message); err != nil {
			logger.Error().Err(err).Msg("failed to persist facts")
			metrics.MemoryErrors.WithLabelValues("update").Inc()
		}
		memParts = append(memParts, p.memory.SummaryPrompt())
	}

	system := prompt.BuildSystemPrompt(req.Tone, req.Lang, req.PreferHinglish)
	user := prompt.BuildUserPrompt(req.Message, joinNonEmpty(memParts, "\n"), retrieval.Chunks)

	completion := p.completer.Complete(ctx, system, user)

	if p.memory != nil {
		p.record(ctx, core.RoleUser, req.Message)
		p.record(ctx, core.RoleAssistant, completion.Text)
	}

	logger.Debug().
		Str("retrieval", string(retrieval.Outcome)).
		Int("chunks", len(retrieval.Chunks)).
		Str("completion", string(completion.Outcome)).
		Msg("chat turn complete")

	return Reply{
		Text:       completion.Text,
		Completion: completion.Outcome,
		Retrieval:  retrieval.Outcome,
		Facts:      facts,
	}
}

func (p *Pipeline) record(ctx context.Context, role, content string) {
	if err := p.memory.AddHistory(role, content); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("role", role).Msg("failed to record history")
		metrics.MemoryErrors.WithLabelValues("history").Inc()
	}
}

func joinNonEmpty(parts []string, sep string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
