package deadline

import (
	"context"
	"time"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/app/services/shared/metrics"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sweepInterval = 500 * time.Millisecond

// Scheduler persists pending deadlines and fires each one at most once as an
// Envelope{Name, Key} on the event bus. Cancel after firing is a silent
// no-op; the sagas discard late notifications against their own state.
type Scheduler struct {
	log      *zap.Logger
	store    contracts.DeadlineStore
	eventBus contracts.EventBus
	metrics  *metrics.Metrics
	stop     chan struct{}
}

func NewScheduler(logger *zap.Logger, store contracts.DeadlineStore, eventBus contracts.EventBus, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		log:      logger,
		store:    store,
		eventBus: eventBus,
		metrics:  m,
		stop:     make(chan struct{}),
	}
}

func (s *Scheduler) Schedule(ctx context.Context, duration time.Duration, name, correlationKey string) (string, error) {
	entry := models.DeadlineEntry{
		Handle: uuid.NewString(),
		Name:   name,
		Key:    correlationKey,
		FireAt: time.Now().UTC().Add(duration),
	}

	if err := s.store.Add(ctx, entry); err != nil {
		return "", exceptions.ErrDeadlineSchedule(err)
	}

	s.log.Info("DeadlineScheduler.Schedule registered",
		zap.String(constvars.LoggingDeadlineNameKey, name),
		zap.String(constvars.LoggingDeadlineHandleKey, entry.Handle),
		zap.String(constvars.LoggingMessageKeyKey, correlationKey),
		zap.Time("fire_at", entry.FireAt),
	)
	return entry.Handle, nil
}

func (s *Scheduler) Cancel(ctx context.Context, name, handle string) error {
	if err := s.store.Remove(ctx, handle); err != nil {
		return exceptions.ErrDeadlineCancel(err)
	}
	s.metrics.IncrementDeadlineCancelled(name)
	s.log.Info("DeadlineScheduler.Cancel removed",
		zap.String(constvars.LoggingDeadlineNameKey, name),
		zap.String(constvars.LoggingDeadlineHandleKey, handle),
	)
	return nil
}

// Start begins the sweep loop. It returns a stop function to halt execution.
func (s *Scheduler) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(sweepInterval)

	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-s.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				s.runOnce(ctx, now)
			}
		}
	}()

	return func() {
		close(s.stop)
	}
}

func (s *Scheduler) runOnce(ctx context.Context, now time.Time) {
	due, err := s.store.Due(ctx, now.UTC())
	if err != nil {
		s.log.Error("deadline.sweeper store lookup failed", zap.Error(err))
		return
	}

	for _, entry := range due {
		envelope, err := messages.NewEnvelope(entry.Name, entry.Key, struct{}{})
		if err != nil {
			s.log.Error("deadline.sweeper envelope build failed",
				zap.String(constvars.LoggingDeadlineHandleKey, entry.Handle),
				zap.Error(err),
			)
			continue
		}
		if err := s.eventBus.Publish(ctx, envelope); err != nil {
			s.log.Error("deadline.sweeper publish failed",
				zap.String(constvars.LoggingDeadlineNameKey, entry.Name),
				zap.String(constvars.LoggingDeadlineHandleKey, entry.Handle),
				zap.Error(err),
			)
			continue
		}
		s.metrics.IncrementDeadlineFired(entry.Name)
		s.log.Info("deadline.sweeper fired",
			zap.String(constvars.LoggingDeadlineNameKey, entry.Name),
			zap.String(constvars.LoggingDeadlineHandleKey, entry.Handle),
			zap.String(constvars.LoggingMessageKeyKey, entry.Key),
		)
	}
}
