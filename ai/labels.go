package ai

import (
	"chat-bot/domain"

	"github.com/samber/lo"
)

// LabelSet is the ordered list of intents seen in the corpus.
// The index of a label is its output slot in the network.
type LabelSet struct {
	labels []domain.Intent
	index  map[domain.Intent]int
}

// BuildLabelSet keeps the first-seen order of the example outputs.
func BuildLabelSet(examples []domain.TrainingExample) LabelSet {
	labels := lo.Uniq(lo.Map(examples, func(e domain.TrainingExample, _ int) domain.Intent {
		return e.Output
	}))
	index := make(map[domain.Intent]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	return LabelSet{labels: labels, index: index}
}

// Len is the number of output slots.
func (l LabelSet) Len() int {
	return len(l.labels)
}

// At returns the label of slot i, false when i is out of range.
func (l LabelSet) At(i int) (domain.Intent, bool) {
	if i < 0 || i >= len(l.labels) {
		return "", false
	}
	return l.labels[i], true
}

// Index returns the slot of intent.
func (l LabelSet) Index(intent domain.Intent) (int, bool) {
	i, ok := l.index[intent]
	return i, ok
}

// Labels returns a copy in slot order.
func (l LabelSet) Labels() []domain.Intent {
	return append([]domain.Intent(nil), l.labels...)
}

// OneHot returns the training target of intent: 1.0 at its slot, 0 elsewhere.
// An intent outside the set yields an all-zero vector.
func (l LabelSet) OneHot(intent domain.Intent) []float64 {
	target := make([]float64, len(l.labels))
	if i, ok := l.index[intent]; ok {
		target[i] = 1.0
	}
	return target
}
