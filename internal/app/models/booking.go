package models

import "time"

// Booking saga states. Terminal states are final: the saga and the
// projection both refuse transitions out of them.
const (
	BookingStatePendingVerifyPatientPhone = "PENDING_VERIFY_PATIENT_PHONE"
	BookingStatePendingCreatePatient      = "PENDING_CREATE_PATIENT"
	BookingStatePendingCreateAppointment  = "PENDING_CREATE_APPOINTMENT"
	BookingStateCompleted                 = "COMPLETED"
	BookingStateFailed                    = "FAILED"
	BookingStateTimeout                   = "TIMEOUT"
)

func BookingStateTerminal(state string) bool {
	switch state {
	case BookingStateCompleted, BookingStateFailed, BookingStateTimeout:
		return true
	}
	return false
}

// BookingSagaState is one row of the booking correlation table.
type BookingSagaState struct {
	BookingID      string
	SlotID         string
	Fingerprint    string
	Name           string
	Email          string
	Phone          string
	VerificationID string
	PatientID      string
	AppointmentID  string
	DeadlineHandle string
	State          string
	Reason         string
	UpdatedAt      time.Time
}

// BookingStatusView is the externally pollable read model row.
type BookingStatusView struct {
	BookingID     string    `json:"booking_id"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
