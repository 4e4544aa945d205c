package contracts

import (
	"context"
	"time"

	"clinic-booking-service/internal/app/models"
)

// DeadlineScheduler fires exactly one timeout notification per Schedule call
// unless cancelled first. Cancelling after the deadline has already fired is
// a silent no-op; consumers must discard late notifications themselves.
// Firing is an Envelope{Name: name, Key: correlationKey} published on the
// event bus.
type DeadlineScheduler interface {
	Schedule(ctx context.Context, duration time.Duration, name, correlationKey string) (handle string, err error)
	Cancel(ctx context.Context, name, handle string) error
}

// DeadlineStore persists pending deadlines so they survive restarts.
type DeadlineStore interface {
	Add(ctx context.Context, entry models.DeadlineEntry) error
	Remove(ctx context.Context, handle string) error
	// Due returns entries with FireAt <= now, removing them from the store.
	Due(ctx context.Context, now time.Time) ([]models.DeadlineEntry, error)
}
