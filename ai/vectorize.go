package ai

import "github.com/samber/lo"

// Vectorizer provides methods to transform text into numerical features.
type Vectorizer struct {
	vocabulary Vocabulary
}

// NewVectorizer binds a vectorizer to a built vocabulary.
func NewVectorizer(vocabulary Vocabulary) *Vectorizer {
	return &Vectorizer{vocabulary: vocabulary}
}

// Size is the length of every produced vector.
func (v *Vectorizer) Size() int {
	return v.vocabulary.Len()
}

// Features transforms a raw string into a fixed-size binary presence vector.
func (v *Vectorizer) Features(text string) []float64 {
	return v.FeaturesOf(Tokenize(text))
}

// FeaturesOf encodes already tokenized text.
// Position i is 1.0 when vocabulary token i occurs at least once.
// Tokens outside the vocabulary carry no signal.
func (v *Vectorizer) FeaturesOf(tokens []string) []float64 {
	vec := make([]float64, v.vocabulary.Len())
	for _, token := range tokens {
		if i, ok := v.vocabulary.Index(token); ok {
			vec[i] = 1.0
		}
	}
	return vec
}

// HasSignal reports whether at least one vocabulary token was present.
func HasSignal(vec []float64) bool {
	return lo.Contains(vec, 1.0)
}
