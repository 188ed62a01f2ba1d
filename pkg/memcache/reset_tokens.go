package mem

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultResetTokenCapacity = 10_000

type ResetTokenStore interface {
	Set(token string, userID uuid.UUID)

	// Consume returns the user for token and removes it. The second result
	// is false when the token is unknown or expired.
	Consume(token string) (uuid.UUID, bool)

	Peek(token string) (uuid.UUID, bool)
}

// ResetTokens keeps password reset tokens in memory with a fixed TTL.
// Tokens do not survive a restart.
type ResetTokens struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, uuid.UUID]
}

func NewResetTokens(capacity int, ttl time.Duration) *ResetTokens {
	if capacity <= 0 {
		capacity = DefaultResetTokenCapacity
	}
	return &ResetTokens{
		cache: expirable.NewLRU[string, uuid.UUID](capacity, nil, ttl),
	}
}

func (s *ResetTokens) Set(token string, userID uuid.UUID) {
	s.cache.Add(token, userID)
}

func (s *ResetTokens) Consume(token string) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.cache.Get(token)
	if !ok {
		return uuid.Nil, false
	}
	s.cache.Remove(token)
	return id, true
}

func (s *ResetTokens) Peek(token string) (uuid.UUID, bool) {
	return s.cache.Peek(token)
}
