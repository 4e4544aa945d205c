package messages

// DateLayout is the wire format for slot dates.
const DateLayout = "2006-01-02"

type Shift string

const (
	ShiftMorning   Shift = "MORNING"
	ShiftAfternoon Shift = "AFTERNOON"
)

func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftAfternoon
}

// Slot commands.
const (
	CommandCreateSlot            = "slot.create"
	CommandLockSlot              = "slot.lock"
	CommandReleaseLockedSlot     = "slot.release_locked"
	CommandReleaseFingerprint    = "slot.release_fingerprint"
	CommandUpdateSlotMaxQuantity = "slot.update_max_quantity"
)

// Slot events.
const (
	EventSlotCreated            = "slot.created"
	EventSlotLocked             = "slot.locked"
	EventSlotReleased           = "slot.released"
	EventFingerprintReleased    = "slot.fingerprint_released"
	EventSlotMaxQuantityUpdated = "slot.max_quantity_updated"
)

type CreateSlotCommand struct {
	SlotID           string `json:"slot_id"`
	MedicalPackageID string `json:"medical_package_id"`
	Date             string `json:"date"`
	Shift            Shift  `json:"shift"`
	MaxQuantity      int    `json:"max_quantity"`
}

type LockSlotCommand struct {
	SlotID      string `json:"slot_id"`
	BookingID   string `json:"booking_id"`
	Fingerprint string `json:"fingerprint"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// ReleaseLockedSlotCommand is the compensating release: it removes the lock
// and returns one unit of capacity to the slot.
type ReleaseLockedSlotCommand struct {
	SlotID      string `json:"slot_id"`
	Fingerprint string `json:"fingerprint"`
}

// ReleaseFingerprintCommand removes the lock record without returning
// capacity; issued when a booking completes and keeps its seat.
type ReleaseFingerprintCommand struct {
	SlotID      string `json:"slot_id"`
	Fingerprint string `json:"fingerprint"`
}

type UpdateSlotMaxQuantityCommand struct {
	SlotID         string `json:"slot_id"`
	NewMaxQuantity int    `json:"new_max_quantity"`
}

type SlotCreatedEvent struct {
	SlotID           string `json:"slot_id"`
	MedicalPackageID string `json:"medical_package_id"`
	Date             string `json:"date"`
	Shift            Shift  `json:"shift"`
	MaxQuantity      int    `json:"max_quantity"`
}

type SlotLockedEvent struct {
	SlotID      string `json:"slot_id"`
	BookingID   string `json:"booking_id"`
	Fingerprint string `json:"fingerprint"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type SlotReleasedEvent struct {
	SlotID      string `json:"slot_id"`
	Fingerprint string `json:"fingerprint"`
}

type FingerprintReleasedEvent struct {
	SlotID      string `json:"slot_id"`
	Fingerprint string `json:"fingerprint"`
}

type SlotMaxQuantityUpdatedEvent struct {
	SlotID         string `json:"slot_id"`
	OldMaxQuantity int    `json:"old_max_quantity"`
	NewMaxQuantity int    `json:"new_max_quantity"`
}
