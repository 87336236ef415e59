package domain

import (
	"chat-bot/errors"
	"sort"
)

// ResponseTable maps an intent to its ordered candidate replies.
type ResponseTable map[Intent][]string

// Lookup returns the candidates for intent, or the UnknownIntent candidates
// when intent is absent or has no reply. A validated table always returns
// a non-empty slice.
func (t ResponseTable) Lookup(intent Intent) []string {
	if replies := t[intent]; len(replies) > 0 {
		return replies
	}
	return t[UnknownIntent]
}

// Validate enforces the fallback invariant: an UnknownIntent entry exists
// and no entry is empty.
func (t ResponseTable) Validate() error {
	if len(t[UnknownIntent]) == 0 {
		return errors.NewConfigurationError(errors.ErrMissingFallback, "intent %q", UnknownIntent)
	}
	intents := make([]string, 0, len(t))
	for intent := range t {
		intents = append(intents, string(intent))
	}
	// Sorted so the reported entry does not depend on map order.
	sort.Strings(intents)
	for _, intent := range intents {
		replies := t[Intent(intent)]
		if len(replies) == 0 {
			return errors.NewConfigurationError(errors.ErrEmptyReplies, "intent %q", intent)
		}
		for i, reply := range replies {
			if reply == "" {
				return errors.NewConfigurationError(errors.ErrEmptyReplies, "intent %q reply #%d is blank", intent, i)
			}
		}
	}
	return nil
}
