package slot

import (
	"context"
	"fmt"
	"time"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/dto/responses"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type slotUsecase struct {
	CommandBus         contracts.CommandBus
	SlotViewRepository contracts.SlotViewRepository
	Log                *zap.Logger
}

func NewSlotUsecase(
	commandBus contracts.CommandBus,
	slotViewRepository contracts.SlotViewRepository,
	logger *zap.Logger,
) contracts.SlotUsecase {
	return &slotUsecase{
		CommandBus:         commandBus,
		SlotViewRepository: slotViewRepository,
		Log:                logger,
	}
}

// SlotID derives deterministically from the slot's identity so that the
// generator and the admin endpoint converge on the same aggregate when they
// both create a given package/date/shift.
func slotIDFor(medicalPackageID, date string, shift messages.Shift) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(medicalPackageID+"|"+date+"|"+string(shift))).String()
}

func (uc *slotUsecase) CreateSlot(ctx context.Context, request *requests.CreateSlotRequest) (*responses.CreateSlotResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.CreateSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if _, err := time.Parse(messages.DateLayout, request.Date); err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	shift := messages.Shift(request.Shift)
	if !shift.Valid() {
		return nil, exceptions.ErrInvalidShift(fmt.Errorf("shift %q", request.Shift))
	}

	slotID := slotIDFor(request.MedicalPackageID, request.Date, shift)
	command := messages.CreateSlotCommand{
		SlotID:           slotID,
		MedicalPackageID: request.MedicalPackageID,
		Date:             request.Date,
		Shift:            shift,
		MaxQuantity:      request.MaxQuantity,
	}
	envelope, err := messages.NewEnvelope(messages.CommandCreateSlot, slotID, command)
	if err != nil {
		return nil, err
	}
	if err := uc.CommandBus.Send(ctx, envelope); err != nil {
		return nil, err
	}

	return &responses.CreateSlotResponse{SlotID: slotID}, nil
}

func (uc *slotUsecase) UpdateMaxQuantity(ctx context.Context, slotID string, request *requests.UpdateSlotMaxQuantityRequest) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.UpdateMaxQuantity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)

	command := messages.UpdateSlotMaxQuantityCommand{
		SlotID:         slotID,
		NewMaxQuantity: request.NewMaxQuantity,
	}
	envelope, err := messages.NewEnvelope(messages.CommandUpdateSlotMaxQuantity, slotID, command)
	if err != nil {
		return err
	}
	return uc.CommandBus.Send(ctx, envelope)
}

func (uc *slotUsecase) FindSlots(ctx context.Context, request *requests.FindSlotsRequest) ([]responses.SlotResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("slotUsecase.FindSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	dateFrom := request.DateFrom
	dateTo := request.DateTo
	if dateFrom == "" {
		dateFrom = time.Now().UTC().Format(messages.DateLayout)
	}
	if dateTo == "" {
		from, err := time.Parse(messages.DateLayout, dateFrom)
		if err != nil {
			return nil, exceptions.ErrCannotParseDate(err)
		}
		dateTo = from.AddDate(0, 0, 7*constvars.AppDefaultQueryWeeks).Format(messages.DateLayout)
	}

	views, err := uc.SlotViewRepository.FindByPackageAndDateRange(ctx, request.MedicalPackageID, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	out := make([]responses.SlotResponse, 0, len(views))
	for _, view := range views {
		out = append(out, responses.SlotResponse{
			SlotID:           view.SlotID,
			MedicalPackageID: view.MedicalPackageID,
			Date:             view.Date,
			Shift:            string(view.Shift),
			MaxQuantity:      view.MaxQuantity,
			Remaining:        view.Remaining,
		})
	}
	return out, nil
}
