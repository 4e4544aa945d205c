package booking

import (
	"context"
	"database/sql"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/queries"
)

type bookingStatusPostgresRepository struct {
	DB *sql.DB
}

func NewBookingStatusPostgresRepository(db *sql.DB) contracts.BookingStatusRepository {
	return &bookingStatusPostgresRepository{
		DB: db,
	}
}

func (repo *bookingStatusPostgresRepository) Save(ctx context.Context, view *models.BookingStatusView) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpsertBookingStatusView,
		view.BookingID,
		view.AppointmentID,
		view.Status,
		view.Message,
		view.CreatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *bookingStatusPostgresRepository) FindByID(ctx context.Context, bookingID string) (*models.BookingStatusView, error) {
	var view models.BookingStatusView
	err := repo.DB.QueryRowContext(ctx, queries.GetBookingStatusViewByID, bookingID).Scan(
		&view.BookingID,
		&view.AppointmentID,
		&view.Status,
		&view.Message,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &view, nil
}
