package verification

import (
	"context"
	"fmt"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/messages"

	"go.uber.org/zap"
)

type verificationUsecase struct {
	Store    contracts.VerificationSagaStore
	EventBus contracts.EventBus
	Log      *zap.Logger
}

func NewVerificationUsecase(
	store contracts.VerificationSagaStore,
	eventBus contracts.EventBus,
	logger *zap.Logger,
) contracts.VerificationUsecase {
	return &verificationUsecase{
		Store:    store,
		EventBus: eventBus,
		Log:      logger,
	}
}

// SubmitReply records the patient's callback click as a reply event. The
// saga judges the code; the endpoint only rejects challenges that do not
// exist or were already settled.
func (uc *verificationUsecase) SubmitReply(ctx context.Context, verificationID, code string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("verificationUsecase.SubmitReply called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingVerificationIDKey, verificationID),
	)

	challenge, err := uc.Store.FindByID(ctx, verificationID)
	if err != nil {
		return err
	}
	if challenge == nil {
		return exceptions.ErrBookingNotFound(fmt.Errorf("verification %s", verificationID))
	}
	if models.VerificationStateTerminal(challenge.State) {
		return exceptions.ErrVerificationTerminal(fmt.Errorf("verification %s already settled in %s", verificationID, challenge.State))
	}

	event := messages.EmailVerificationRepliedEvent{
		VerificationID:   verificationID,
		VerificationCode: code,
	}
	envelope, err := messages.NewEnvelope(messages.EventEmailVerificationReplied, verificationID, event)
	if err != nil {
		return err
	}
	return uc.EventBus.Publish(ctx, envelope)
}
