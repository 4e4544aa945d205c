package booking

import (
	"context"
	"fmt"
	"sync"

	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/exceptions"
)

// MemoryBookingSagaStore keeps the correlation table in process memory.
type MemoryBookingSagaStore struct {
	mu    sync.RWMutex
	sagas map[string]models.BookingSagaState
}

func NewMemoryBookingSagaStore() *MemoryBookingSagaStore {
	return &MemoryBookingSagaStore{
		sagas: make(map[string]models.BookingSagaState),
	}
}

func (s *MemoryBookingSagaStore) Save(ctx context.Context, state *models.BookingSagaState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sagas[state.BookingID]
	if ok && models.BookingStateTerminal(existing.State) && existing.State != state.State {
		return exceptions.ErrInvariantViolation(fmt.Errorf("booking %s already terminal in %s", state.BookingID, existing.State))
	}
	s.sagas[state.BookingID] = *state
	return nil
}

func (s *MemoryBookingSagaStore) FindByBookingID(ctx context.Context, bookingID string) (*models.BookingSagaState, error) {
	return s.find(func(saga models.BookingSagaState) bool { return saga.BookingID == bookingID })
}

func (s *MemoryBookingSagaStore) FindByVerificationID(ctx context.Context, verificationID string) (*models.BookingSagaState, error) {
	return s.find(func(saga models.BookingSagaState) bool { return saga.VerificationID == verificationID })
}

func (s *MemoryBookingSagaStore) FindByPatientID(ctx context.Context, patientID string) (*models.BookingSagaState, error) {
	return s.find(func(saga models.BookingSagaState) bool { return saga.PatientID == patientID })
}

func (s *MemoryBookingSagaStore) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.BookingSagaState, error) {
	return s.find(func(saga models.BookingSagaState) bool { return saga.AppointmentID == appointmentID })
}

func (s *MemoryBookingSagaStore) find(match func(models.BookingSagaState) bool) (*models.BookingSagaState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, saga := range s.sagas {
		if match(saga) {
			out := saga
			return &out, nil
		}
	}
	return nil, nil
}
