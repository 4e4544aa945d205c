package contracts

import (
	"context"

	"clinic-booking-service/internal/app/models"
)

// VerificationSagaStore is the verification correlation table. Save must
// reject transitions out of a terminal state.
type VerificationSagaStore interface {
	Save(ctx context.Context, challenge *models.VerificationChallenge) error
	FindByID(ctx context.Context, verificationID string) (*models.VerificationChallenge, error)
}

type VerificationUsecase interface {
	SubmitReply(ctx context.Context, verificationID, code string) error
}
