package slot

import (
	"context"
	"database/sql"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/queries"
)

type slotViewPostgresRepository struct {
	DB *sql.DB
}

func NewSlotViewPostgresRepository(db *sql.DB) contracts.SlotViewRepository {
	return &slotViewPostgresRepository{
		DB: db,
	}
}

func (repo *slotViewPostgresRepository) Save(ctx context.Context, view *models.SlotView) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpsertSlotView,
		view.SlotID,
		view.MedicalPackageID,
		view.Date,
		view.Shift,
		view.MaxQuantity,
		view.Remaining,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *slotViewPostgresRepository) FindByID(ctx context.Context, slotID string) (*models.SlotView, error) {
	var view models.SlotView
	err := repo.DB.QueryRowContext(ctx, queries.GetSlotViewByID, slotID).Scan(
		&view.SlotID,
		&view.MedicalPackageID,
		&view.Date,
		&view.Shift,
		&view.MaxQuantity,
		&view.Remaining,
		&view.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &view, nil
}

func (repo *slotViewPostgresRepository) FindByPackageAndDateRange(ctx context.Context, medicalPackageID, dateFrom, dateTo string) ([]models.SlotView, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetSlotViewsByPackageAndDateRange, medicalPackageID, dateFrom, dateTo)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var views []models.SlotView
	for rows.Next() {
		var view models.SlotView
		if err := rows.Scan(
			&view.SlotID,
			&view.MedicalPackageID,
			&view.Date,
			&view.Shift,
			&view.MaxQuantity,
			&view.Remaining,
			&view.UpdatedAt,
		); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return views, nil
}

type medicalPackagePostgresRepository struct {
	DB *sql.DB
}

func NewMedicalPackagePostgresRepository(db *sql.DB) contracts.MedicalPackageRepository {
	return &medicalPackagePostgresRepository{
		DB: db,
	}
}

func (repo *medicalPackagePostgresRepository) FindActive(ctx context.Context) ([]models.MedicalPackage, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetActiveMedicalPackages)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var packages []models.MedicalPackage
	for rows.Next() {
		var pkg models.MedicalPackage
		if err := rows.Scan(&pkg.ID, &pkg.Name, &pkg.Active); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return packages, nil
}
