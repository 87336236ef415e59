// Package ai holds the intent-classification core: text normalization,
// bag-of-words features, the feed-forward network and the confidence gate.
package ai

import (
	"strings"
	"unicode"
)

// Tokenize normalizes text into word-stems.
// Lowercase, trim, drop every rune that is neither a word character
// ([A-Za-z0-9_]) nor whitespace, split on whitespace, then strip a
// trailing "es", else a trailing "s".
// The suffix rule is a heuristic: "bus" becomes "bu", "buses" becomes "bus".
// Words stemmed down to nothing ("es", "s") are dropped.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(strings.ToLower(text)))

	words := strings.Fields(cleaned)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if token := stem(w); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func stem(word string) string {
	switch {
	case strings.HasSuffix(word, "es"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "s"):
		return strings.TrimSuffix(word, "s")
	default:
		return word
	}
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
