package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
)

// memoryStore keeps encoded bags in process memory, used by tests and single-node setups.
// Bags are stored in their JSON form so callers never share maps with the store.
type memoryStore struct {
	mu   sync.Mutex
	bags map[string][]byte
}

func NewMemoryStore() port.BagStore {
	return &memoryStore{
		bags: make(map[string][]byte),
	}
}

func (s *memoryStore) GetBag(_ context.Context, sessionID string) (domain.Bag, error) {
	if sessionID == "" {
		return domain.Bag{}, errors.New("sessionID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(sessionID)
}

func (s *memoryStore) UpdateBag(ctx context.Context, sessionID string, fn func(domain.Bag) (domain.Bag, error)) (domain.Bag, error) {
	var b domain.Bag

	if sessionID == "" {
		return b, errors.New("sessionID is empty")
	}
	if fn == nil {
		return b, errors.New("fn is nil")
	}
	if err := ctx.Err(); err != nil {
		return b, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.get(sessionID)
	if err != nil {
		return b, err
	}

	updated, err := fn(current)
	if err != nil {
		return b, err
	}

	if err := updated.Validate(); err != nil {
		return b, fmt.Errorf("bag.Validate: %w", err)
	}

	if updated.IsEmpty() {
		delete(s.bags, sessionID)
		return updated, nil
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return b, fmt.Errorf("json.Marshal: %w", err)
	}
	s.bags[sessionID] = data

	return updated, nil
}

func (s *memoryStore) ClearBag(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("sessionID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bags, sessionID)
	return nil
}

func (s *memoryStore) get(sessionID string) (domain.Bag, error) {
	var b domain.Bag

	data, ok := s.bags[sessionID]
	if !ok {
		return b, nil
	}

	if err := json.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return b, nil
}
