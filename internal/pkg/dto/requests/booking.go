package requests

type CreateBookingRequest struct {
	SlotID string `json:"slot_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"required"`
}
