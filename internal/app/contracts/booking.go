package contracts

import (
	"context"

	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/dto/responses"
)

// BookingSagaStore is the booking correlation table. Save must reject
// transitions out of a terminal state.
type BookingSagaStore interface {
	Save(ctx context.Context, state *models.BookingSagaState) error
	FindByBookingID(ctx context.Context, bookingID string) (*models.BookingSagaState, error)
	FindByVerificationID(ctx context.Context, verificationID string) (*models.BookingSagaState, error)
	FindByPatientID(ctx context.Context, patientID string) (*models.BookingSagaState, error)
	FindByAppointmentID(ctx context.Context, appointmentID string) (*models.BookingSagaState, error)
}

type BookingStatusRepository interface {
	Save(ctx context.Context, view *models.BookingStatusView) error
	FindByID(ctx context.Context, bookingID string) (*models.BookingStatusView, error)
}

type BookingUsecase interface {
	CreateBooking(ctx context.Context, fingerprint string, request *requests.CreateBookingRequest) (*responses.CreateBookingResponse, error)
	GetBookingStatus(ctx context.Context, bookingID string) (*responses.BookingStatusResponse, error)
}
