package msgstore

import (
	"context"
	"sync"

	"github.com/milk9111/msgfall/api"
)

// MemoryStore keeps messages in process memory. Everything is lost on exit.
type MemoryStore struct {
	mu       sync.RWMutex
	messages []api.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) List(ctx context.Context) ([]api.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, text string) (api.Message, error) {
	if err := ctx.Err(); err != nil {
		return api.Message{}, err
	}
	msg, err := newMessage(text)
	if err != nil {
		return api.Message{}, err
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
