package domain

import "sync"

// ConversationContext records the last resolved intent for the lifetime of
// the process. Classification never reads it back: it is exposed for
// collaborators that want multi-turn behaviour later.
type ConversationContext struct {
	mu         sync.RWMutex
	lastIntent Intent
	set        bool
}

func NewConversationContext() *ConversationContext {
	return &ConversationContext{}
}

// Remember overwrites the last intent. Writers are serialized.
func (c *ConversationContext) Remember(intent Intent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastIntent = intent
	c.set = true
}

// LastIntent returns the last resolved intent, false when nothing was resolved yet.
func (c *ConversationContext) LastIntent() (Intent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastIntent, c.set
}
