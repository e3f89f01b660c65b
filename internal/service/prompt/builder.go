package prompt

import (
	"strings"

	"github.com/sandevgo/protox/internal/core"
)

const (
	ToneCasual       = "Casual"
	ToneProfessional = "Professional"
	ToneCoach        = "Coach"

	LangAuto     = "Auto"
	LangHindi    = "Hindi"
	LangEnglish  = "English"
	LangHinglish = "Hinglish"
)

var tones = map[string]string{
	ToneCasual:       "Friendly and relaxed tone",
	ToneProfessional: "Professional and informative tone",
	ToneCoach:        "Supportive and motivational tone",
}

const closing = " Keep answers short, accurate, and friendly. Do not invent facts."

// BuildSystemPrompt describes the assistant persona. Unknown tones use the
// professional description, unknown languages add no language instruction.
func BuildSystemPrompt(tone, lang string, preferHinglish bool) string {
	desc, ok := tones[tone]
	if !ok {
		desc = tones[ToneProfessional]
	}

	var b strings.Builder
	b.WriteString("You are " + core.AssistantName + ", a helpful and concise assistant. Tone: " + desc + ".")
	b.WriteString(languageClause(lang, preferHinglish))
	b.WriteString(closing)
	return b.String()
}

func languageClause(lang string, preferHinglish bool) string {
	switch lang {
	case LangAuto:
		if preferHinglish {
			return " If user mixes Hindi and English, reply naturally in Hinglish."
		}
		return " Detect and use the user's language automatically."
	case LangHindi:
		return " Reply in Hindi."
	case LangEnglish:
		return " Reply in professional English."
	case LangHinglish:
		return " Reply in clean Hinglish."
	default:
		return ""
	}
}

func BuildUserPrompt(text, memory string, chunks []core.ContextChunk) string {
	var b strings.Builder
	b.WriteString("User: " + text)

	if memory != "" {
		b.WriteString("\n\nUser Memory:\n" + memory)
	}

	if len(chunks) > 0 {
		parts := make([]string, 0, len(chunks))
		for _, c := range chunks {
			if c.Text == "" {
				continue
			}
			parts = append(parts, "["+c.Source+"] "+c.Text)
		}
		b.WriteString("\n\nRelevant college context:\n" + strings.Join(parts, "\n\n"))
	}

	b.WriteString("\n\nRespond helpfully.")
	return b.String()
}
