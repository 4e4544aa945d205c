package slot

import (
	"fmt"

	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"
)

// aggregate is the write-side state of one slot, rebuilt by folding its
// event stream. Capacity accounting: remaining counts seats neither locked
// nor consumed; a completed booking keeps its seat, so releasing a
// fingerprint on completion does not touch remaining.
type aggregate struct {
	exists           bool
	slotID           string
	medicalPackageID string
	date             string
	shift            messages.Shift
	maxQuantity      int
	remaining        int

	// fingerprint -> booking holding the lock
	locks map[string]string
}

func newAggregate() *aggregate {
	return &aggregate{locks: make(map[string]string)}
}

// replay folds the event stream into the aggregate.
func replay(envelopes []messages.Envelope) (*aggregate, error) {
	agg := newAggregate()
	for _, envelope := range envelopes {
		if err := agg.apply(envelope); err != nil {
			return nil, err
		}
	}
	return agg, nil
}

func (a *aggregate) apply(envelope messages.Envelope) error {
	switch envelope.Name {
	case messages.EventSlotCreated:
		var event messages.SlotCreatedEvent
		if err := envelope.Decode(&event); err != nil {
			return err
		}
		a.exists = true
		a.slotID = event.SlotID
		a.medicalPackageID = event.MedicalPackageID
		a.date = event.Date
		a.shift = event.Shift
		a.maxQuantity = event.MaxQuantity
		a.remaining = event.MaxQuantity

	case messages.EventSlotLocked:
		var event messages.SlotLockedEvent
		if err := envelope.Decode(&event); err != nil {
			return err
		}
		a.locks[event.Fingerprint] = event.BookingID
		a.remaining--

	case messages.EventSlotReleased:
		var event messages.SlotReleasedEvent
		if err := envelope.Decode(&event); err != nil {
			return err
		}
		delete(a.locks, event.Fingerprint)
		a.remaining++

	case messages.EventFingerprintReleased:
		var event messages.FingerprintReleasedEvent
		if err := envelope.Decode(&event); err != nil {
			return err
		}
		delete(a.locks, event.Fingerprint)

	case messages.EventSlotMaxQuantityUpdated:
		var event messages.SlotMaxQuantityUpdatedEvent
		if err := envelope.Decode(&event); err != nil {
			return err
		}
		a.remaining += event.NewMaxQuantity - a.maxQuantity
		a.maxQuantity = event.NewMaxQuantity
	}
	return nil
}

// decideCreate returns the creation event, or nil when the identical slot
// already exists. The generator re-issues creates on every run, so replays
// must be silent.
func (a *aggregate) decideCreate(command messages.CreateSlotCommand) (interface{}, error) {
	if a.exists {
		if a.medicalPackageID == command.MedicalPackageID && a.date == command.Date && a.shift == command.Shift {
			return nil, nil
		}
		return nil, exceptions.ErrInvariantViolation(fmt.Errorf("slot %s already exists with different attributes", command.SlotID))
	}
	if command.MaxQuantity <= 0 {
		return nil, exceptions.ErrMaxQuantityNotPositive(fmt.Errorf("max quantity %d", command.MaxQuantity))
	}
	if !command.Shift.Valid() {
		return nil, exceptions.ErrInvalidShift(fmt.Errorf("shift %q", command.Shift))
	}
	return messages.SlotCreatedEvent{
		SlotID:           command.SlotID,
		MedicalPackageID: command.MedicalPackageID,
		Date:             command.Date,
		Shift:            command.Shift,
		MaxQuantity:      command.MaxQuantity,
	}, nil
}

// decideLock grants one unit of capacity to the booking. A replay of the
// same fingerprint and booking is a no-op; the same fingerprint under a
// different booking is a conflict.
func (a *aggregate) decideLock(command messages.LockSlotCommand) (interface{}, error) {
	if !a.exists {
		return nil, exceptions.ErrSlotNotFound(fmt.Errorf("slot %s", command.SlotID))
	}
	if bookingID, held := a.locks[command.Fingerprint]; held {
		if bookingID == command.BookingID {
			return nil, nil
		}
		return nil, exceptions.ErrSlotLockConflict(fmt.Errorf("fingerprint already holds a lock under booking %s", bookingID))
	}
	if a.remaining <= 0 {
		return nil, exceptions.ErrSlotUnavailable(fmt.Errorf("slot %s has no remaining capacity", command.SlotID))
	}
	return messages.SlotLockedEvent{
		SlotID:      command.SlotID,
		BookingID:   command.BookingID,
		Fingerprint: command.Fingerprint,
		Name:        command.Name,
		Email:       command.Email,
		Phone:       command.Phone,
	}, nil
}

// decideReleaseLocked compensates a failed booking: the lock is removed and
// the seat returns to the pool.
func (a *aggregate) decideReleaseLocked(command messages.ReleaseLockedSlotCommand) (interface{}, error) {
	if !a.exists {
		return nil, exceptions.ErrSlotNotFound(fmt.Errorf("slot %s", command.SlotID))
	}
	if _, held := a.locks[command.Fingerprint]; !held {
		return nil, exceptions.ErrLockedSlotNotFound(fmt.Errorf("no lock held for fingerprint on slot %s", command.SlotID))
	}
	if a.remaining >= a.maxQuantity {
		return nil, exceptions.ErrInvariantViolation(fmt.Errorf("release would exceed max quantity on slot %s", command.SlotID))
	}
	return messages.SlotReleasedEvent{
		SlotID:      command.SlotID,
		Fingerprint: command.Fingerprint,
	}, nil
}

// decideReleaseFingerprint finalizes a completed booking: the lock record
// goes away but the seat stays consumed.
func (a *aggregate) decideReleaseFingerprint(command messages.ReleaseFingerprintCommand) (interface{}, error) {
	if !a.exists {
		return nil, exceptions.ErrSlotNotFound(fmt.Errorf("slot %s", command.SlotID))
	}
	if _, held := a.locks[command.Fingerprint]; !held {
		return nil, exceptions.ErrLockedSlotNotFound(fmt.Errorf("no lock held for fingerprint on slot %s", command.SlotID))
	}
	return messages.FingerprintReleasedEvent{
		SlotID:      command.SlotID,
		Fingerprint: command.Fingerprint,
	}, nil
}

// decideUpdateMaxQuantity shifts remaining by the capacity delta. Shrinking
// below the consumed seat count would drive remaining negative and is
// rejected.
func (a *aggregate) decideUpdateMaxQuantity(command messages.UpdateSlotMaxQuantityCommand) (interface{}, error) {
	if !a.exists {
		return nil, exceptions.ErrSlotNotFound(fmt.Errorf("slot %s", command.SlotID))
	}
	if command.NewMaxQuantity <= 0 {
		return nil, exceptions.ErrMaxQuantityNotPositive(fmt.Errorf("max quantity %d", command.NewMaxQuantity))
	}
	consumed := a.maxQuantity - a.remaining
	if command.NewMaxQuantity < consumed {
		return nil, exceptions.ErrMaxQuantityBelowLocked(fmt.Errorf("new max %d below %d seats in use", command.NewMaxQuantity, consumed))
	}
	if command.NewMaxQuantity == a.maxQuantity {
		return nil, nil
	}
	return messages.SlotMaxQuantityUpdatedEvent{
		SlotID:         command.SlotID,
		OldMaxQuantity: a.maxQuantity,
		NewMaxQuantity: command.NewMaxQuantity,
	}, nil
}
