package rag

import (
	"strings"
	"unicode"
)

type Chunk struct {
	Text      string
	TokenSize int
	Index     int
}

type ChunkerConfig struct {
	MaxTokens     int
	OverlapTokens int
}

// DefaultChunkerConfig sizes chunks for short knowledge snippets.
func DefaultChunkerConfig(maxTokens int) ChunkerConfig {
	return ChunkerConfig{
		MaxTokens:     maxTokens,
		OverlapTokens: maxTokens / 8,
	}
}

type Chunker struct {
	tok Tokenizer
	cfg ChunkerConfig
}

func NewChunker(tok Tokenizer, cfg ChunkerConfig) *Chunker {
	return &Chunker{tok: tok, cfg: cfg}
}

// Split groups whole sentences into chunks of at most MaxTokens. Sentences
// longer than that are cut on token boundaries.
func (c *Chunker) Split(text string) []Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []Chunk
	var current strings.Builder
	currentTokens := 0
	index := 0

	flush := func() {
		chunks = append(chunks, Chunk{
			Text:      strings.TrimSpace(current.String()),
			TokenSize: currentTokens,
			Index:     index,
		})
		index++
		current.Reset()
		currentTokens = 0
	}

	for i, sentence := range sentences {
		sentenceTokens := c.count(sentence)

		if sentenceTokens > c.cfg.MaxTokens {
			if current.Len() > 0 {
				flush()
			}
			for _, sc := range c.splitLong(sentence) {
				chunks = append(chunks, Chunk{
					Text:      strings.TrimSpace(sc.Text),
					TokenSize: sc.TokenSize,
					Index:     index,
				})
				index++
			}
			continue
		}

		if currentTokens+sentenceTokens > c.cfg.MaxTokens && current.Len() > 0 {
			flush()
			overlap := c.overlap(sentences, i)
			if n := c.count(overlap); n+sentenceTokens <= c.cfg.MaxTokens {
				current.WriteString(overlap)
				currentTokens = n
			}
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
		currentTokens += sentenceTokens
	}

	if current.Len() > 0 {
		flush()
	}

	return chunks
}

func (c *Chunker) splitLong(text string) []Chunk {
	tokens := c.tok.Encode(text)

	var chunks []Chunk
	for i := 0; i < len(tokens); i += c.cfg.MaxTokens {
		end := min(i+c.cfg.MaxTokens, len(tokens))
		part := tokens[i:end]
		chunks = append(chunks, Chunk{
			Text:      c.tok.Decode(part),
			TokenSize: len(part),
		})
	}
	return chunks
}

func (c *Chunker) count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.tok.Encode(text))
}

// overlap returns the trailing sentences before idx that fit the overlap
// budget.
func (c *Chunker) overlap(sentences []string, idx int) string {
	if idx == 0 || c.cfg.OverlapTokens <= 0 {
		return ""
	}

	var parts []string
	tokens := 0
	for i := idx - 1; i >= 0; i-- {
		n := c.count(sentences[i])
		if tokens+n > c.cfg.OverlapTokens {
			break
		}
		parts = append([]string{sentences[i]}, parts...)
		tokens += n
	}
	return strings.Join(parts, " ")
}

var sentenceEnders = map[rune]bool{
	'.': true, '!': true, '?': true, '।': true, '॥': true,
	'。': true, '！': true, '？': true, '．': true, '…': true,
}

func splitSentences(text string) []string {
	var sentences []string

	for _, para := range splitParagraphs(text) {
		var current strings.Builder
		runes := []rune(para)

		for i, r := range runes {
			current.WriteRune(r)
			if !sentenceEnders[r] {
				continue
			}
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) || isCJK(runes[i+1]) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 && text != "" {
		return []string{text}
	}
	return sentences
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
