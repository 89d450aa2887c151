package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/anasir-dev/portfolio-backend/errs"
)

// MemoryStore is the volatile fallback backend: identical external behavior to
// the durable backends, state lost on process restart. The mutex only protects
// map integrity; two concurrent writers still land last-writer-wins.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]json.RawMessage)}
}

func (s *MemoryStore) Kind() string {
	return "memory"
}

func (s *MemoryStore) ListAll(_ context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]json.RawMessage, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *MemoryStore) FindByID(_ context.Context, collection, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, errs.ErrNotFound)
	}
	return doc, nil
}

func (s *MemoryStore) Insert(_ context.Context, collection, id string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]json.RawMessage)
	}
	if _, ok := s.collections[collection][id]; ok {
		return fmt.Errorf("%s/%s: %w", collection, id, errs.ErrAlreadyExists)
	}
	s.collections[collection][id] = doc
	return nil
}

func (s *MemoryStore) Replace(_ context.Context, collection, id string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, errs.ErrNotFound)
	}
	s.collections[collection][id] = doc
	return nil
}

func (s *MemoryStore) RemoveByID(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, errs.ErrNotFound)
	}
	delete(s.collections[collection], id)
	return nil
}
