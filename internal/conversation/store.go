// README: Conversation store contract, in-memory backend, and history trim policy.
package conversation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"

	"voyago/internal/agent"
)

// HistoryCap bounds stored history to 40 entries (20 exchanges) so prompt
// size and memory stay bounded across turns.
const HistoryCap = 40

// Store persists message history keyed by conversation id. The core reads
// it once at the start of a turn and writes it once at the end.
type Store interface {
	Get(ctx context.Context, id string) ([]agent.Message, error)
	Set(ctx context.Context, id string, messages []agent.Message) error
	Delete(ctx context.Context, id string) error
}

// Trim drops the oldest entries beyond HistoryCap.
func Trim(messages []agent.Message) []agent.Message {
	if len(messages) <= HistoryCap {
		return messages
	}
	return messages[len(messages)-HistoryCap:]
}

// NewID generates a random hex conversation id.
func NewID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// MemoryStore keeps conversations in-process. Used in tests and as the
// default backend when no external store is configured.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string][]agent.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{conversations: make(map[string][]agent.Message)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) ([]agent.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs, ok := s.conversations[id]
	if !ok {
		return nil, nil
	}
	out := make([]agent.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, id string, messages []agent.Message) error {
	stored := make([]agent.Message, len(messages))
	copy(stored, messages)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[id] = stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, id)
	return nil
}
