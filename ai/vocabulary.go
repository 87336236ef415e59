package ai

import (
	"chat-bot/domain"

	"github.com/samber/lo"
)

// Vocabulary is the fixed token universe of a training corpus.
// Tokens keep their first-seen order; the position of a token is its feature index.
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

// BuildVocabulary scans every example input through Tokenize once.
func BuildVocabulary(examples []domain.TrainingExample) Vocabulary {
	tokens := lo.Uniq(lo.FlatMap(examples, func(e domain.TrainingExample, _ int) []string {
		return Tokenize(e.Input)
	}))
	index := make(map[string]int, len(tokens))
	for i, token := range tokens {
		index[token] = i
	}
	return Vocabulary{tokens: tokens, index: index}
}

// Len is the feature vector size.
func (v Vocabulary) Len() int {
	return len(v.tokens)
}

// Index returns the feature position of token.
func (v Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Tokens returns a copy, the vocabulary itself never changes.
func (v Vocabulary) Tokens() []string {
	return append([]string(nil), v.tokens...)
}
