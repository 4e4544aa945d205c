package booking

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/queries"
)

type bookingSagaPostgresStore struct {
	DB *sql.DB
}

func NewBookingSagaPostgresStore(db *sql.DB) contracts.BookingSagaStore {
	return &bookingSagaPostgresStore{
		DB: db,
	}
}

func (store *bookingSagaPostgresStore) Save(ctx context.Context, state *models.BookingSagaState) error {
	existing, err := store.FindByBookingID(ctx, state.BookingID)
	if err != nil {
		return err
	}
	if existing != nil && models.BookingStateTerminal(existing.State) && existing.State != state.State {
		return exceptions.ErrInvariantViolation(fmt.Errorf("booking %s already terminal in %s", state.BookingID, existing.State))
	}

	_, err = store.DB.ExecContext(ctx, queries.UpsertBookingSaga,
		state.BookingID,
		state.SlotID,
		state.Fingerprint,
		state.Name,
		state.Email,
		state.Phone,
		state.VerificationID,
		state.PatientID,
		state.AppointmentID,
		state.DeadlineHandle,
		state.State,
		state.Reason,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (store *bookingSagaPostgresStore) FindByBookingID(ctx context.Context, bookingID string) (*models.BookingSagaState, error) {
	return store.queryOne(ctx, queries.GetBookingSagaByBookingID, bookingID)
}

func (store *bookingSagaPostgresStore) FindByVerificationID(ctx context.Context, verificationID string) (*models.BookingSagaState, error) {
	return store.queryOne(ctx, queries.GetBookingSagaByVerificationID, verificationID)
}

func (store *bookingSagaPostgresStore) FindByPatientID(ctx context.Context, patientID string) (*models.BookingSagaState, error) {
	return store.queryOne(ctx, queries.GetBookingSagaByPatientID, patientID)
}

func (store *bookingSagaPostgresStore) FindByAppointmentID(ctx context.Context, appointmentID string) (*models.BookingSagaState, error) {
	return store.queryOne(ctx, queries.GetBookingSagaByAppointmentID, appointmentID)
}

func (store *bookingSagaPostgresStore) queryOne(ctx context.Context, query, arg string) (*models.BookingSagaState, error) {
	var state models.BookingSagaState
	err := store.DB.QueryRowContext(ctx, query, arg).Scan(
		&state.BookingID,
		&state.SlotID,
		&state.Fingerprint,
		&state.Name,
		&state.Email,
		&state.Phone,
		&state.VerificationID,
		&state.PatientID,
		&state.AppointmentID,
		&state.DeadlineHandle,
		&state.State,
		&state.Reason,
		&state.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &state, nil
}
