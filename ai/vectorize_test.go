package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorizer_Features(t *testing.T) {
	vectorizer := NewVectorizer(BuildVocabulary(corpusExamples()))

	tests := []struct {
		name     string
		input    string
		expected []float64
	}{
		{name: "Single known token", input: "hello", expected: []float64{1, 0, 0, 0, 0, 0, 0, 0, 0}},
		{name: "Repeated token counts once", input: "hello hello HELLO", expected: []float64{1, 0, 0, 0, 0, 0, 0, 0, 0}},
		{name: "Stemmed token matches", input: "thanks", expected: []float64{0, 0, 0, 1, 0, 0, 0, 0, 0}},
		{name: "Unknown tokens are ignored", input: "hello stranger", expected: []float64{1, 0, 0, 0, 0, 0, 0, 0, 0}},
		{name: "Order does not matter", input: "later, you see", expected: []float64{0, 0, 0, 0, 0, 0, 1, 1, 1}},
		{name: "Empty input", input: "", expected: []float64{0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, vectorizer.Features(tt.input))
		})
	}
}

func TestVectorizer_LengthAndBinaryValues(t *testing.T) {
	req := require.New(t)
	vectorizer := NewVectorizer(BuildVocabulary(corpusExamples()))

	inputs := []string{"", "!!!", "hello there bye", "a a a a", "completely unrelated words", "thank you, see you later"}
	for _, input := range inputs {
		vec := vectorizer.Features(input)
		req.Len(vec, vectorizer.Size())
		for _, v := range vec {
			req.True(v == 0 || v == 1, "input %q produced %v", input, v)
		}
	}
}

func TestHasSignal(t *testing.T) {
	req := require.New(t)
	vectorizer := NewVectorizer(BuildVocabulary(corpusExamples()))

	req.True(HasSignal(vectorizer.Features("bye")))
	req.False(HasSignal(vectorizer.Features("")))
	req.False(HasSignal(vectorizer.Features("unseen vocabulary only")))
}
