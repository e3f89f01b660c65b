package rag

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const DefaultHashDims = 384

// HashEmbedder maps text to a feature hashed bag of words. It needs no model
// and is good enough for keyword-heavy knowledge notes.
type HashEmbedder struct {
	dims int
}

func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultHashDims
	}
	return &HashEmbedder{dims: dims}
}

func (h *HashEmbedder) Dims() int {
	return h.dims
}

func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dims)

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.Is(unicode.Mn, r) && !unicode.Is(unicode.Mc, r)
	})
	if len(words) == 0 {
		return h.seeded(text), nil
	}

	for _, w := range words {
		sum := hash64(w)
		idx := int(sum % uint64(h.dims))
		if sum>>63 == 1 {
			vec[idx] -= 1
		} else {
			vec[idx] += 1
		}
	}

	if !normalize(vec) {
		return h.seeded(text), nil
	}
	return vec, nil
}

// seeded spreads the text hash over every dimension so texts without words
// still get a stable non-zero vector.
func (h *HashEmbedder) seeded(text string) []float32 {
	vec := make([]float32, h.dims)
	seed := hash64(text)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}
	normalize(vec)
	return vec
}

func hash64(s string) uint64 {
	f := fnv.New64a()
	f.Write([]byte(s))
	return f.Sum64()
}

// normalize scales vec to unit length in place and reports false for a zero
// vector.
func normalize(vec []float32) bool {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return false
	}
	n := float32(math.Sqrt(norm))
	for i := range vec {
		vec[i] /= n
	}
	return true
}
