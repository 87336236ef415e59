// Package domain contains core concepts of the chatbot.
// Intents, training examples and response tables are plain values
// validated once at startup and never mutated afterwards.
package domain

// Intent is a conversational intent label, e.g. "greeting".
type Intent string

// UnknownIntent is the reserved fallback intent. It is resolved for low
// confidence predictions and utterances carrying no known token.
const UnknownIntent Intent = "unknown"

// TrainingExample is one labeled utterance of the training corpus.
type TrainingExample struct {
	Input  string `yaml:"input" validate:"required"`
	Output Intent `yaml:"output" validate:"required"`
}

// Corpus is the whole supervision supplied at startup.
type Corpus struct {
	Examples  []TrainingExample `yaml:"examples" validate:"required,min=1,dive"`
	Responses ResponseTable     `yaml:"responses" validate:"required,min=1"`
}

// Resolution is the outcome of resolving a probability distribution.
// Predicted keeps the arg-max label before the confidence floor was applied.
type Resolution struct {
	Intent     Intent
	Predicted  Intent
	Index      int
	Confidence float64
}

// IsUnknown reports whether the resolution fell back to UnknownIntent.
func (r Resolution) IsUnknown() bool {
	return r.Intent == UnknownIntent
}
