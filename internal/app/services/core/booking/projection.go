package booking

import (
	"context"
	"time"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/messages"

	"go.uber.org/zap"
)

// StatusProjection maintains the pollable booking status read model. A row
// that reached a terminal status never changes again; late events are
// logged and dropped.
type StatusProjection struct {
	log        *zap.Logger
	repository contracts.BookingStatusRepository
}

func NewStatusProjection(logger *zap.Logger, repository contracts.BookingStatusRepository) *StatusProjection {
	return &StatusProjection{
		log:        logger,
		repository: repository,
	}
}

func (p *StatusProjection) Subscribe(eventBus contracts.EventBus) {
	eventBus.Subscribe(messages.EventSlotLocked, p.onSlotLocked)
	eventBus.Subscribe(messages.EventBookingCompleted, p.onBookingCompleted)
	eventBus.Subscribe(messages.EventBookingRejected, p.onBookingRejected)
}

func (p *StatusProjection) onSlotLocked(ctx context.Context, envelope messages.Envelope) error {
	var event messages.SlotLockedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}

	existing, err := p.repository.FindByID(ctx, event.BookingID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	now := time.Now().UTC()
	return p.repository.Save(ctx, &models.BookingStatusView{
		BookingID: event.BookingID,
		Status:    models.BookingStatePendingVerifyPatientPhone,
		Message:   constvars.BookingInProgressMessage,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (p *StatusProjection) onBookingCompleted(ctx context.Context, envelope messages.Envelope) error {
	var event messages.BookingCompletedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}
	return p.finish(ctx, event.BookingID, func(view *models.BookingStatusView) {
		view.AppointmentID = event.AppointmentID
		view.Status = models.BookingStateCompleted
		view.Message = constvars.BookingCompletedMessage
	})
}

func (p *StatusProjection) onBookingRejected(ctx context.Context, envelope messages.Envelope) error {
	var event messages.BookingRejectedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}
	return p.finish(ctx, event.BookingID, func(view *models.BookingStatusView) {
		view.Status = models.BookingStateFailed
		if event.Reason == messages.VerificationFailureTimeout {
			view.Status = models.BookingStateTimeout
		}
		view.Message = event.Reason
	})
}

func (p *StatusProjection) finish(ctx context.Context, bookingID string, mutate func(*models.BookingStatusView)) error {
	view, err := p.repository.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if view == nil {
		p.log.Warn("BookingStatusProjection missing row",
			zap.String(constvars.LoggingBookingIDKey, bookingID),
		)
		return nil
	}
	if models.BookingStateTerminal(view.Status) {
		p.log.Info("BookingStatusProjection ignoring event for terminal row",
			zap.String(constvars.LoggingBookingIDKey, bookingID),
			zap.String("status", view.Status),
		)
		return nil
	}
	mutate(view)
	view.UpdatedAt = time.Now().UTC()
	return p.repository.Save(ctx, view)
}
