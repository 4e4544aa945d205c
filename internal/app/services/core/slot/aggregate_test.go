package slot

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"clinic-booking-service/internal/app/services/shared/bus"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type slotFixture struct {
	bus     *bus.MemoryBus
	store   *MemoryEventStore
	manager *Manager
}

func newSlotFixture() *slotFixture {
	memoryBus := bus.NewMemoryBus(zap.NewNop(), nil)
	store := NewMemoryEventStore()
	manager := NewManager(zap.NewNop(), store, memoryBus, nil)
	manager.RegisterHandlers(memoryBus)
	return &slotFixture{bus: memoryBus, store: store, manager: manager}
}

func (f *slotFixture) createSlot(t *testing.T, slotID string, maxQuantity int) {
	t.Helper()
	command := messages.CreateSlotCommand{
		SlotID:           slotID,
		MedicalPackageID: "pkg-1",
		Date:             "2026-09-01",
		Shift:            messages.ShiftMorning,
		MaxQuantity:      maxQuantity,
	}
	envelope, err := messages.NewEnvelope(messages.CommandCreateSlot, slotID, command)
	assert.NoError(t, err)
	assert.NoError(t, f.bus.Send(context.Background(), envelope))
}

func (f *slotFixture) lockSlot(slotID, bookingID, fingerprint string) error {
	command := messages.LockSlotCommand{
		SlotID:      slotID,
		BookingID:   bookingID,
		Fingerprint: fingerprint,
		Name:        "Jan Kowalski",
		Email:       "jan@example.com",
		Phone:       "+48123456789",
	}
	envelope, err := messages.NewEnvelope(messages.CommandLockSlot, slotID, command)
	if err != nil {
		return err
	}
	return f.bus.Send(context.Background(), envelope)
}

func (f *slotFixture) releaseLocked(slotID, fingerprint string) error {
	command := messages.ReleaseLockedSlotCommand{SlotID: slotID, Fingerprint: fingerprint}
	envelope, err := messages.NewEnvelope(messages.CommandReleaseLockedSlot, slotID, command)
	if err != nil {
		return err
	}
	return f.bus.Send(context.Background(), envelope)
}

func (f *slotFixture) releaseFingerprint(slotID, fingerprint string) error {
	command := messages.ReleaseFingerprintCommand{SlotID: slotID, Fingerprint: fingerprint}
	envelope, err := messages.NewEnvelope(messages.CommandReleaseFingerprint, slotID, command)
	if err != nil {
		return err
	}
	return f.bus.Send(context.Background(), envelope)
}

func (f *slotFixture) updateMaxQuantity(slotID string, newMax int) error {
	command := messages.UpdateSlotMaxQuantityCommand{SlotID: slotID, NewMaxQuantity: newMax}
	envelope, err := messages.NewEnvelope(messages.CommandUpdateSlotMaxQuantity, slotID, command)
	if err != nil {
		return err
	}
	return f.bus.Send(context.Background(), envelope)
}

func (f *slotFixture) replayAggregate(t *testing.T, slotID string) *aggregate {
	t.Helper()
	history, err := f.store.Load(context.Background(), slotID)
	assert.NoError(t, err)
	agg, err := replay(history)
	assert.NoError(t, err)
	return agg
}

func TestSlot_LockConsumesCapacity(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 2)

	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))

	agg := f.replayAggregate(t, "slot-1")
	assert.Equal(t, 1, agg.remaining)
	assert.Equal(t, "booking-a", agg.locks["fp-a"])
}

func TestSlot_LockRejectedWhenExhausted(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 1)

	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))

	err := f.lockSlot("slot-1", "booking-b", "fp-b")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotUnavailable))
}

func TestSlot_LockUnknownSlot(t *testing.T) {
	f := newSlotFixture()

	err := f.lockSlot("slot-missing", "booking-a", "fp-a")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
}

func TestSlot_LockReplaySameBookingIsIdempotent(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 2)

	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))
	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))

	agg := f.replayAggregate(t, "slot-1")
	assert.Equal(t, 1, agg.remaining, "replay must not consume a second seat")
}

func TestSlot_LockSameFingerprintDifferentBookingConflicts(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 2)

	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))

	err := f.lockSlot("slot-1", "booking-b", "fp-a")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotLockConflict))
}

func TestSlot_ReleaseLockedReturnsCapacity(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 1)

	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))
	assert.NoError(t, f.releaseLocked("slot-1", "fp-a"))

	agg := f.replayAggregate(t, "slot-1")
	assert.Equal(t, 1, agg.remaining)

	// The seat is free again for another booking.
	assert.NoError(t, f.lockSlot("slot-1", "booking-b", "fp-b"))
}

func TestSlot_ReleaseUnknownFingerprint(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 1)

	err := f.releaseLocked("slot-1", "fp-never-locked")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeLockedSlotNotFound))
}

func TestSlot_ReleaseFingerprintKeepsSeatConsumed(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 1)

	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))
	assert.NoError(t, f.releaseFingerprint("slot-1", "fp-a"))

	agg := f.replayAggregate(t, "slot-1")
	assert.Equal(t, 0, agg.remaining, "completed booking keeps its seat")
	assert.Empty(t, agg.locks)

	err := f.lockSlot("slot-1", "booking-b", "fp-b")
	assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotUnavailable))
}

func TestSlot_CreateReplayIsSilent(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 2)
	f.createSlot(t, "slot-1", 2)

	history, err := f.store.Load(context.Background(), "slot-1")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSlot_UpdateMaxQuantityAdjustsRemaining(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 2)
	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))

	assert.NoError(t, f.updateMaxQuantity("slot-1", 5))

	agg := f.replayAggregate(t, "slot-1")
	assert.Equal(t, 5, agg.maxQuantity)
	assert.Equal(t, 4, agg.remaining)
}

func TestSlot_UpdateMaxQuantityBelowConsumedRejected(t *testing.T) {
	f := newSlotFixture()
	f.createSlot(t, "slot-1", 3)
	assert.NoError(t, f.lockSlot("slot-1", "booking-a", "fp-a"))
	assert.NoError(t, f.lockSlot("slot-1", "booking-b", "fp-b"))

	err := f.updateMaxQuantity("slot-1", 1)
	assert.True(t, exceptions.HasCode(err, exceptions.CodeValidation))

	agg := f.replayAggregate(t, "slot-1")
	assert.Equal(t, 3, agg.maxQuantity)
}

func TestSlot_ConcurrentLocksGrantExactlyCapacity(t *testing.T) {
	f := newSlotFixture()
	const capacity = 3
	const contenders = 10
	f.createSlot(t, "slot-1", capacity)

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.lockSlot("slot-1", fmt.Sprintf("booking-%d", i), fmt.Sprintf("fp-%d", i))
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, err := range errs {
		if err == nil {
			granted++
		} else {
			assert.True(t, exceptions.HasCode(err, exceptions.CodeSlotUnavailable))
		}
	}
	assert.Equal(t, capacity, granted)

	agg := f.replayAggregate(t, "slot-1")
	assert.Equal(t, 0, agg.remaining)
	assert.Len(t, agg.locks, capacity)
}
