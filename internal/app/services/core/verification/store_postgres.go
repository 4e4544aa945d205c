package verification

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/queries"
)

type verificationSagaPostgresStore struct {
	DB *sql.DB
}

func NewVerificationSagaPostgresStore(db *sql.DB) contracts.VerificationSagaStore {
	return &verificationSagaPostgresStore{
		DB: db,
	}
}

func (store *verificationSagaPostgresStore) Save(ctx context.Context, challenge *models.VerificationChallenge) error {
	existing, err := store.FindByID(ctx, challenge.VerificationID)
	if err != nil {
		return err
	}
	if existing != nil && models.VerificationStateTerminal(existing.State) && existing.State != challenge.State {
		return exceptions.ErrInvariantViolation(fmt.Errorf("verification %s already settled in %s", challenge.VerificationID, existing.State))
	}

	_, err = store.DB.ExecContext(ctx, queries.UpsertVerificationChallenge,
		challenge.VerificationID,
		challenge.Email,
		challenge.Code,
		challenge.DeadlineHandle,
		challenge.State,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (store *verificationSagaPostgresStore) FindByID(ctx context.Context, verificationID string) (*models.VerificationChallenge, error) {
	var challenge models.VerificationChallenge
	err := store.DB.QueryRowContext(ctx, queries.GetVerificationChallengeByID, verificationID).Scan(
		&challenge.VerificationID,
		&challenge.Email,
		&challenge.Code,
		&challenge.DeadlineHandle,
		&challenge.State,
		&challenge.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &challenge, nil
}
