package deadline

import (
	"context"
	"sync"
	"time"

	"clinic-booking-service/internal/app/models"
)

// MemoryDeadlineStore keeps pending deadlines in process memory. Used by
// tests and single-node setups; production wires the Redis store.
type MemoryDeadlineStore struct {
	mu      sync.Mutex
	entries map[string]models.DeadlineEntry
}

func NewMemoryDeadlineStore() *MemoryDeadlineStore {
	return &MemoryDeadlineStore{
		entries: make(map[string]models.DeadlineEntry),
	}
}

func (s *MemoryDeadlineStore) Add(ctx context.Context, entry models.DeadlineEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Handle] = entry
	return nil
}

func (s *MemoryDeadlineStore) Remove(ctx context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, handle)
	return nil
}

func (s *MemoryDeadlineStore) Due(ctx context.Context, now time.Time) ([]models.DeadlineEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []models.DeadlineEntry
	for handle, entry := range s.entries {
		if !entry.FireAt.After(now) {
			due = append(due, entry)
			delete(s.entries, handle)
		}
	}
	return due, nil
}
