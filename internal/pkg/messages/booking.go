package messages

// Booking saga terminal events.
const (
	EventBookingCompleted = "booking.completed"
	EventBookingRejected  = "booking.rejected"
)

type BookingCompletedEvent struct {
	BookingID     string `json:"booking_id"`
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
}

type BookingRejectedEvent struct {
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason"`
}
