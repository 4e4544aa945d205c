package responses

type CreateBookingResponse struct {
	BookingID string `json:"booking_id"`
}

type BookingStatusResponse struct {
	BookingID     string `json:"booking_id"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}
