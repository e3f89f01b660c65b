package memory

import (
	"strings"
	"unicode"
)

const (
	FactName = "name"
	FactCity = "city"
)

// A pattern is a phrase of lowercase words. The value is read from the token
// right after the phrase. When required is set, every listed word must also
// appear somewhere in the text as a standalone token.
type pattern struct {
	phrase   []string
	required []string
}

var patterns = map[string][]pattern{
	FactName: {
		{phrase: []string{"my", "name", "is"}},
		{phrase: []string{"mera", "naam"}},
	},
	FactCity: {
		{phrase: []string{"i", "live", "in"}},
		{phrase: []string{"main"}, required: []string{"se", "hu"}},
	},
}

type token struct {
	raw  string
	word string
}

func tokenize(text string) []token {
	fields := strings.Fields(text)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		word := strings.ToLower(strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.Is(unicode.Mn, r) && !unicode.Is(unicode.Mc, r)
		}))
		tokens = append(tokens, token{raw: f, word: word})
	}
	return tokens
}

// Extract returns the facts found in text. For every key the earliest match
// wins, regardless of which of its patterns produced it.
func Extract(text string) map[string]string {
	tokens := tokenize(text)
	present := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		present[t.word] = true
	}

	facts := map[string]string{}
	for key, pats := range patterns {
		if v, ok := firstMatch(tokens, present, pats); ok {
			facts[key] = v
		}
	}
	return facts
}

func firstMatch(tokens []token, present map[string]bool, pats []pattern) (string, bool) {
	for i := range tokens {
		for _, p := range pats {
			if !requiredPresent(present, p.required) || !phraseAt(tokens, i, p.phrase) {
				continue
			}
			next := i + len(p.phrase)
			if next >= len(tokens) {
				continue
			}
			if v := leadingLetters(tokens[next].raw); v != "" {
				return capitalize(v), true
			}
		}
	}
	return "", false
}

func requiredPresent(present map[string]bool, words []string) bool {
	for _, w := range words {
		if !present[w] {
			return false
		}
	}
	return true
}

func phraseAt(tokens []token, i int, phrase []string) bool {
	if i+len(phrase) > len(tokens) {
		return false
	}
	for j, w := range phrase {
		if tokens[i+j].word != w {
			return false
		}
	}
	return true
}

func isNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= 0x0900 && r <= 0x097F)
}

func leadingLetters(s string) string {
	for i, r := range s {
		if !isNameRune(r) {
			return s[:i]
		}
	}
	return s
}

func capitalize(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
