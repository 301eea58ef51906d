package memory

import (
	"context"
	"sync"

	v1 "github.com/corsa-lab/project-corsa/internal/api/v1"
)

// Store is the in-memory offer catalog: single writer, many readers.
//
// Snapshot stability relies on a copy-on-clear discipline. InsertAll only
// ever appends, so a slice header handed out earlier keeps observing exactly
// the offers it had when taken. Clear swaps the slice for a nil one instead
// of truncating in place, which leaves earlier snapshots pointing at the old
// backing array untouched.
type Store struct {
	mu     sync.RWMutex
	offers []*v1.Offer
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// InsertAll appends offers under the write lock.
func (s *Store) InsertAll(ctx context.Context, offers []*v1.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offers = append(s.offers, offers...)
	return nil
}

// Clear drops the whole catalog.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.offers = nil
	return nil
}

// Snapshot returns the current catalog view. The slice header is shared with
// the store, which is safe under the append-only / copy-on-clear discipline.
func (s *Store) Snapshot(ctx context.Context) ([]*v1.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.offers, nil
}

// Len reports the number of stored offers.
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.offers), nil
}
