package services

import (
	"chat-bot/contract"
	"chat-bot/domain"
	"math/rand/v2"
	"sync"
)

// ReplySelector draws one reply uniformly among the candidates of an intent.
type ReplySelector struct {
	mu     sync.Mutex
	table  domain.ResponseTable
	random contract.RandomSource
}

// NewReplySelector validates the table, a nil random source falls back to a
// randomly seeded PCG generator.
func NewReplySelector(table domain.ResponseTable, random contract.RandomSource) (*ReplySelector, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if random == nil {
		random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &ReplySelector{table: table, random: random}, nil
}

// Select never fails: intents missing from the table use the unknown replies.
func (s *ReplySelector) Select(intent domain.Intent) string {
	candidates := s.table.Lookup(intent)

	s.mu.Lock()
	i := s.random.IntN(len(candidates))
	s.mu.Unlock()

	return candidates[i]
}
