package booking

import (
	"context"
	"fmt"
	"time"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/dto/responses"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type bookingUsecase struct {
	CommandBus       contracts.CommandBus
	StatusRepository contracts.BookingStatusRepository
	Log              *zap.Logger
}

func NewBookingUsecase(
	commandBus contracts.CommandBus,
	statusRepository contracts.BookingStatusRepository,
	logger *zap.Logger,
) contracts.BookingUsecase {
	return &bookingUsecase{
		CommandBus:       commandBus,
		StatusRepository: statusRepository,
		Log:              logger,
	}
}

// CreateBooking locks the slot synchronously so capacity conflicts surface
// to the caller immediately; everything after the lock runs in the saga and
// is observed by polling the status endpoint.
func (uc *bookingUsecase) CreateBooking(ctx context.Context, fingerprint string, request *requests.CreateBookingRequest) (*responses.CreateBookingResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, request.SlotID),
	)

	if fingerprint == "" {
		return nil, exceptions.ErrFingerprintRequired(fmt.Errorf("empty fingerprint header"))
	}

	bookingID := uuid.NewString()
	command := messages.LockSlotCommand{
		SlotID:      request.SlotID,
		BookingID:   bookingID,
		Fingerprint: fingerprint,
		Name:        request.Name,
		Email:       request.Email,
		Phone:       request.Phone,
	}
	envelope, err := messages.NewEnvelope(messages.CommandLockSlot, request.SlotID, command)
	if err != nil {
		return nil, err
	}
	if err := uc.CommandBus.Send(ctx, envelope); err != nil {
		return nil, err
	}

	// Write the initial row here so a poll straight after the 202 finds it;
	// the projection leaves an existing row alone and vice versa.
	if existing, err := uc.StatusRepository.FindByID(ctx, bookingID); err == nil && existing != nil {
		return &responses.CreateBookingResponse{BookingID: bookingID}, nil
	}
	now := time.Now().UTC()
	if err := uc.StatusRepository.Save(ctx, &models.BookingStatusView{
		BookingID: bookingID,
		Status:    models.BookingStatePendingVerifyPatientPhone,
		Message:   constvars.BookingInProgressMessage,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		uc.Log.Warn("bookingUsecase.CreateBooking initial status write failed",
			zap.String(constvars.LoggingBookingIDKey, bookingID),
			zap.Error(err),
		)
	}

	return &responses.CreateBookingResponse{BookingID: bookingID}, nil
}

func (uc *bookingUsecase) GetBookingStatus(ctx context.Context, bookingID string) (*responses.BookingStatusResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.GetBookingStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	view, err := uc.StatusRepository.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, exceptions.ErrBookingNotFound(fmt.Errorf("booking %s", bookingID))
	}

	return &responses.BookingStatusResponse{
		BookingID:     view.BookingID,
		AppointmentID: view.AppointmentID,
		Status:        view.Status,
		Message:       view.Message,
	}, nil
}
