package slot

import (
	"context"
	"fmt"
	"time"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"go.uber.org/zap"
)

// Projection maintains the slot read model from the event stream. Events for
// one slot arrive in order, so each step is a plain read-modify-write.
type Projection struct {
	log        *zap.Logger
	repository contracts.SlotViewRepository
}

func NewProjection(logger *zap.Logger, repository contracts.SlotViewRepository) *Projection {
	return &Projection{
		log:        logger,
		repository: repository,
	}
}

// Subscribe attaches the projection to every slot event.
func (p *Projection) Subscribe(eventBus contracts.EventBus) {
	eventBus.Subscribe(messages.EventSlotCreated, p.onSlotCreated)
	eventBus.Subscribe(messages.EventSlotLocked, p.onSlotLocked)
	eventBus.Subscribe(messages.EventSlotReleased, p.onSlotReleased)
	eventBus.Subscribe(messages.EventSlotMaxQuantityUpdated, p.onMaxQuantityUpdated)
}

func (p *Projection) onSlotCreated(ctx context.Context, envelope messages.Envelope) error {
	var event messages.SlotCreatedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}
	view := &models.SlotView{
		SlotID:           event.SlotID,
		MedicalPackageID: event.MedicalPackageID,
		Date:             event.Date,
		Shift:            event.Shift,
		MaxQuantity:      event.MaxQuantity,
		Remaining:        event.MaxQuantity,
		UpdatedAt:        time.Now().UTC(),
	}
	return p.repository.Save(ctx, view)
}

func (p *Projection) onSlotLocked(ctx context.Context, envelope messages.Envelope) error {
	return p.adjust(ctx, envelope.Key, func(view *models.SlotView) {
		view.Remaining--
	})
}

func (p *Projection) onSlotReleased(ctx context.Context, envelope messages.Envelope) error {
	return p.adjust(ctx, envelope.Key, func(view *models.SlotView) {
		view.Remaining++
	})
}

func (p *Projection) onMaxQuantityUpdated(ctx context.Context, envelope messages.Envelope) error {
	var event messages.SlotMaxQuantityUpdatedEvent
	if err := envelope.Decode(&event); err != nil {
		return err
	}
	return p.adjust(ctx, envelope.Key, func(view *models.SlotView) {
		view.Remaining += event.NewMaxQuantity - view.MaxQuantity
		view.MaxQuantity = event.NewMaxQuantity
	})
}

func (p *Projection) adjust(ctx context.Context, slotID string, mutate func(*models.SlotView)) error {
	view, err := p.repository.FindByID(ctx, slotID)
	if err != nil {
		return err
	}
	if view == nil {
		p.log.Warn("SlotProjection missing view row",
			zap.String(constvars.LoggingSlotIDKey, slotID),
		)
		return exceptions.ErrSlotNotFound(fmt.Errorf("view for slot %s", slotID))
	}
	mutate(view)
	view.UpdatedAt = time.Now().UTC()
	return p.repository.Save(ctx, view)
}
