package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]string
	}{
		{name: "english name", text: "my name is Ravi", want: map[string]string{FactName: "Ravi"}},
		{name: "case insensitive", text: "MY NAME IS rAVI", want: map[string]string{FactName: "Ravi"}},
		{name: "trailing punctuation", text: "Hi! My name is Ravi.", want: map[string]string{FactName: "Ravi"}},
		{name: "hinglish name", text: "mera naam Priya hai", want: map[string]string{FactName: "Priya"}},
		{name: "devanagari name", text: "mera naam राहुल है", want: map[string]string{FactName: "राहुल"}},
		{name: "english city", text: "I live in mumbai", want: map[string]string{FactCity: "Mumbai"}},
		{name: "hinglish city", text: "main Jaipur se hu", want: map[string]string{FactCity: "Jaipur"}},
		{name: "hinglish city needs se and hu tokens", text: "main Jaipur jaa raha hu", want: map[string]string{}},
		{name: "substrings do not count", text: "main Jaipur house", want: map[string]string{}},
		{name: "both facts", text: "my name is Ravi and i live in Pune", want: map[string]string{FactName: "Ravi", FactCity: "Pune"}},
		{name: "earliest match wins", text: "mera naam Amit, my name is Ravi", want: map[string]string{FactName: "Amit"}},
		{name: "phrase at end", text: "my name is", want: map[string]string{}},
		{name: "value without letters skipped", text: "my name is 42 and my name is Ravi", want: map[string]string{FactName: "Ravi"}},
		{name: "no match", text: "what are the hostel timings?", want: map[string]string{}},
		{name: "empty", text: "", want: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}
