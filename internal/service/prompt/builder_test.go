package prompt

import (
	"strings"
	"testing"

	"github.com/sandevgo/protox/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPrompt_Tones(t *testing.T) {
	tests := []struct {
		tone string
		want string
	}{
		{tone: ToneCasual, want: "Tone: Friendly and relaxed tone."},
		{tone: ToneProfessional, want: "Tone: Professional and informative tone."},
		{tone: ToneCoach, want: "Tone: Supportive and motivational tone."},
		{tone: "Pirate", want: "Tone: Professional and informative tone."},
		{tone: "", want: "Tone: Professional and informative tone."},
	}

	for _, tt := range tests {
		t.Run(tt.tone, func(t *testing.T) {
			got := BuildSystemPrompt(tt.tone, LangAuto, true)
			assert.Equal(t, got, BuildSystemPrompt(tt.tone, LangAuto, true))
			assert.True(t, strings.HasPrefix(got, "You are Prototype-X, a helpful and concise assistant. "+tt.want))
			assert.True(t, strings.HasSuffix(got, closing))
		})
	}
}

func TestBuildSystemPrompt_Languages(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		prefer bool
		clause string
	}{
		{name: "auto prefer", lang: LangAuto, prefer: true, clause: " If user mixes Hindi and English, reply naturally in Hinglish."},
		{name: "auto detect", lang: LangAuto, prefer: false, clause: " Detect and use the user's language automatically."},
		{name: "hindi", lang: LangHindi, clause: " Reply in Hindi."},
		{name: "english", lang: LangEnglish, clause: " Reply in professional English."},
		{name: "hinglish", lang: LangHinglish, clause: " Reply in clean Hinglish."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSystemPrompt(ToneCasual, tt.lang, tt.prefer)
			assert.Equal(t, 1, strings.Count(got, tt.clause))

			want := "You are Prototype-X, a helpful and concise assistant. Tone: Friendly and relaxed tone." + tt.clause + closing
			assert.Equal(t, want, got)
		})
	}

	t.Run("unknown language", func(t *testing.T) {
		got := BuildSystemPrompt(ToneCasual, "Klingon", true)
		assert.Equal(t, "You are Prototype-X, a helpful and concise assistant. Tone: Friendly and relaxed tone."+closing, got)
	})
}

func TestBuildUserPrompt(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		memory string
		chunks []core.ContextChunk
		want   string
	}{
		{
			name: "plain",
			text: "hello",
			want: "User: hello\n\nRespond helpfully.",
		},
		{
			name:   "memory and context",
			text:   "hello",
			memory: "User facts → name: Ravi",
			chunks: []core.ContextChunk{{Source: "doc1.txt", Text: "fact A"}},
			want:   "User: hello\n\nUser Memory:\nUser facts → name: Ravi\n\nRelevant college context:\n[doc1.txt] fact A\n\nRespond helpfully.",
		},
		{
			name: "empty chunk skipped",
			text: "hello",
			chunks: []core.ContextChunk{
				{Source: "a.txt", Text: "one"},
				{Source: "b.txt", Text: ""},
				{Source: "c.md", Text: "two"},
			},
			want: "User: hello\n\nRelevant college context:\n[a.txt] one\n\n[c.md] two\n\nRespond helpfully.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildUserPrompt(tt.text, tt.memory, tt.chunks))
		})
	}
}
