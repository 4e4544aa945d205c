package booking

import (
	"context"
	"sync"

	"clinic-booking-service/internal/app/models"
)

// MemoryBookingStatusRepository is the in-memory status read model store.
type MemoryBookingStatusRepository struct {
	mu    sync.RWMutex
	views map[string]models.BookingStatusView
}

func NewMemoryBookingStatusRepository() *MemoryBookingStatusRepository {
	return &MemoryBookingStatusRepository{
		views: make(map[string]models.BookingStatusView),
	}
}

func (repo *MemoryBookingStatusRepository) Save(ctx context.Context, view *models.BookingStatusView) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.views[view.BookingID] = *view
	return nil
}

func (repo *MemoryBookingStatusRepository) FindByID(ctx context.Context, bookingID string) (*models.BookingStatusView, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	view, ok := repo.views[bookingID]
	if !ok {
		return nil, nil
	}
	out := view
	return &out, nil
}
