package ai

import (
	"chat-bot/domain"
	"math"
)

// DefaultConfidenceThreshold is the probability under which a prediction
// is routed to domain.UnknownIntent.
const DefaultConfidenceThreshold = 0.3

// Resolver turns a probability distribution into an intent and records it
// into the conversation context.
type Resolver struct {
	threshold    float64
	conversation *domain.ConversationContext
}

func NewResolver(threshold float64, conversation *domain.ConversationContext) *Resolver {
	return &Resolver{threshold: threshold, conversation: conversation}
}

// Resolve picks the arg-max label, first index on ties.
// A maximum strictly below the threshold, an empty distribution, or an index
// outside labels resolves to domain.UnknownIntent.
func (r *Resolver) Resolve(distribution []float64, labels LabelSet) domain.Resolution {
	index, confidence := argMax(distribution)
	resolution := domain.Resolution{
		Intent:     domain.UnknownIntent,
		Predicted:  domain.UnknownIntent,
		Index:      index,
		Confidence: clamp(confidence),
	}

	if label, ok := labels.At(index); ok {
		resolution.Predicted = label
		if confidence >= r.threshold {
			resolution.Intent = label
		}
	}

	if r.conversation != nil {
		r.conversation.Remember(resolution.Intent)
	}
	return resolution
}

func clamp(p float64) float64 {
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
