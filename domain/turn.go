package domain

import (
	"time"

	"github.com/google/uuid"
)

// Turn represents one immutable exchange: the user utterance and the bot reply.
type Turn struct {
	ID         uuid.UUID // unique identifier
	Utterance  string
	Tokens     []string
	Intent     Intent
	Confidence float64
	Reply      string
	Language   string // ISO 639-1, diagnostic only
	At         time.Time
}

// NewTurn stamps a new exchange with an identifier and the current UTC time.
func NewTurn(utterance string) Turn {
	return Turn{
		ID:        uuid.New(),
		Utterance: utterance,
		At:        time.Now().UTC(),
	}
}
