package slot

import (
	"context"
	"sync"

	"clinic-booking-service/internal/pkg/messages"
)

// MemoryEventStore keeps slot event streams in process memory.
type MemoryEventStore struct {
	mu      sync.RWMutex
	streams map[string][]messages.Envelope
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{
		streams: make(map[string][]messages.Envelope),
	}
}

func (s *MemoryEventStore) Append(ctx context.Context, slotID string, envelopes ...messages.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streams[slotID] = append(s.streams[slotID], envelopes...)
	return nil
}

func (s *MemoryEventStore) Load(ctx context.Context, slotID string) ([]messages.Envelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stream := s.streams[slotID]
	out := make([]messages.Envelope, len(stream))
	copy(out, stream)
	return out, nil
}
