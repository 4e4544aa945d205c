package verification

import (
	"context"
	"fmt"
	"sync"

	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/exceptions"
)

// MemoryVerificationSagaStore keeps challenges in process memory.
type MemoryVerificationSagaStore struct {
	mu         sync.RWMutex
	challenges map[string]models.VerificationChallenge
}

func NewMemoryVerificationSagaStore() *MemoryVerificationSagaStore {
	return &MemoryVerificationSagaStore{
		challenges: make(map[string]models.VerificationChallenge),
	}
}

func (s *MemoryVerificationSagaStore) Save(ctx context.Context, challenge *models.VerificationChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.challenges[challenge.VerificationID]
	if ok && models.VerificationStateTerminal(existing.State) && existing.State != challenge.State {
		return exceptions.ErrInvariantViolation(fmt.Errorf("verification %s already settled in %s", challenge.VerificationID, existing.State))
	}
	s.challenges[challenge.VerificationID] = *challenge
	return nil
}

func (s *MemoryVerificationSagaStore) FindByID(ctx context.Context, verificationID string) (*models.VerificationChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[verificationID]
	if !ok {
		return nil, nil
	}
	out := challenge
	return &out, nil
}
