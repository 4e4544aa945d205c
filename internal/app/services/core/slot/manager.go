package slot

import (
	"context"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/services/shared/metrics"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"go.uber.org/zap"
)

// Manager executes slot commands against the event-sourced aggregate. The
// command bus linearizes Send per envelope Key, and every slot command is
// keyed by slot ID, so the manager is the single writer of each slot's
// stream: load, decide, append, publish, with no interleaving per slot.
type Manager struct {
	log        *zap.Logger
	eventStore contracts.SlotEventStore
	eventBus   contracts.EventBus
	metrics    *metrics.Metrics
}

func NewManager(logger *zap.Logger, eventStore contracts.SlotEventStore, eventBus contracts.EventBus, m *metrics.Metrics) *Manager {
	return &Manager{
		log:        logger,
		eventStore: eventStore,
		eventBus:   eventBus,
		metrics:    m,
	}
}

// RegisterHandlers binds every slot command to the manager.
func (m *Manager) RegisterHandlers(commandBus contracts.CommandBus) {
	commandBus.RegisterHandler(messages.CommandCreateSlot, m.handleCreateSlot)
	commandBus.RegisterHandler(messages.CommandLockSlot, m.handleLockSlot)
	commandBus.RegisterHandler(messages.CommandReleaseLockedSlot, m.handleReleaseLockedSlot)
	commandBus.RegisterHandler(messages.CommandReleaseFingerprint, m.handleReleaseFingerprint)
	commandBus.RegisterHandler(messages.CommandUpdateSlotMaxQuantity, m.handleUpdateMaxQuantity)
}

func (m *Manager) handleCreateSlot(ctx context.Context, envelope messages.Envelope) error {
	var command messages.CreateSlotCommand
	if err := envelope.Decode(&command); err != nil {
		return err
	}
	return m.execute(ctx, command.SlotID, messages.EventSlotCreated, func(agg *aggregate) (interface{}, error) {
		return agg.decideCreate(command)
	})
}

func (m *Manager) handleLockSlot(ctx context.Context, envelope messages.Envelope) error {
	var command messages.LockSlotCommand
	if err := envelope.Decode(&command); err != nil {
		return err
	}
	err := m.execute(ctx, command.SlotID, messages.EventSlotLocked, func(agg *aggregate) (interface{}, error) {
		return agg.decideLock(command)
	})
	if exceptions.HasCode(err, exceptions.CodeSlotUnavailable) || exceptions.HasCode(err, exceptions.CodeSlotLockConflict) {
		m.metrics.IncrementSlotLockRejection()
	}
	return err
}

func (m *Manager) handleReleaseLockedSlot(ctx context.Context, envelope messages.Envelope) error {
	var command messages.ReleaseLockedSlotCommand
	if err := envelope.Decode(&command); err != nil {
		return err
	}
	return m.execute(ctx, command.SlotID, messages.EventSlotReleased, func(agg *aggregate) (interface{}, error) {
		return agg.decideReleaseLocked(command)
	})
}

func (m *Manager) handleReleaseFingerprint(ctx context.Context, envelope messages.Envelope) error {
	var command messages.ReleaseFingerprintCommand
	if err := envelope.Decode(&command); err != nil {
		return err
	}
	return m.execute(ctx, command.SlotID, messages.EventFingerprintReleased, func(agg *aggregate) (interface{}, error) {
		return agg.decideReleaseFingerprint(command)
	})
}

func (m *Manager) handleUpdateMaxQuantity(ctx context.Context, envelope messages.Envelope) error {
	var command messages.UpdateSlotMaxQuantityCommand
	if err := envelope.Decode(&command); err != nil {
		return err
	}
	return m.execute(ctx, command.SlotID, messages.EventSlotMaxQuantityUpdated, func(agg *aggregate) (interface{}, error) {
		return agg.decideUpdateMaxQuantity(command)
	})
}

func (m *Manager) execute(ctx context.Context, slotID, eventName string, decide func(*aggregate) (interface{}, error)) error {
	history, err := m.eventStore.Load(ctx, slotID)
	if err != nil {
		return err
	}
	agg, err := replay(history)
	if err != nil {
		return err
	}

	payload, err := decide(agg)
	if err != nil {
		return err
	}
	if payload == nil {
		// Idempotent replay, nothing new to record.
		return nil
	}

	envelope, err := messages.NewEnvelope(eventName, slotID, payload)
	if err != nil {
		return err
	}
	if err := m.eventStore.Append(ctx, slotID, envelope); err != nil {
		return err
	}

	if err := m.eventBus.Publish(ctx, envelope); err != nil {
		m.log.Error("SlotManager.execute event publish failed",
			zap.String(constvars.LoggingSlotIDKey, slotID),
			zap.String(constvars.LoggingMessageNameKey, eventName),
			zap.Error(err),
		)
		return err
	}
	return nil
}
