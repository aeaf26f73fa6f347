// Package memory provides an in-process AuctionStore. It backs the
// "memory" storage driver and the package tests; records do not survive a
// restart.
package memory

import (
	"context"
	"sync"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
)

type Store struct {
	mu      sync.RWMutex
	records map[string]domain.Record
}

func New() *Store {
	return &Store{records: make(map[string]domain.Record)}
}

// Get returns a copy of the stored record so callers keep the same detached
// semantics the networked backends give them.
func (s *Store) Get(_ context.Context, key string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *Store) Set(_ context.Context, key string, rec *domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = *rec
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

func (s *Store) Has(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[key]
	return ok, nil
}

func (s *Store) List(_ context.Context) ([]*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*domain.Record, 0, len(s.records))
	for _, rec := range s.records {
		copied := rec
		recs = append(recs, &copied)
	}
	return recs, nil
}
