package contracts

import (
	"context"

	"clinic-booking-service/internal/app/models"
	"clinic-booking-service/internal/pkg/dto/requests"
	"clinic-booking-service/internal/pkg/dto/responses"
	"clinic-booking-service/internal/pkg/messages"
)

// SlotEventStore is the append-only log backing the slot aggregate. Events
// for one slot ID are returned in append order; replaying them rebuilds the
// aggregate state exactly.
type SlotEventStore interface {
	Append(ctx context.Context, slotID string, envelopes ...messages.Envelope) error
	Load(ctx context.Context, slotID string) ([]messages.Envelope, error)
}

type SlotViewRepository interface {
	Save(ctx context.Context, view *models.SlotView) error
	FindByID(ctx context.Context, slotID string) (*models.SlotView, error)
	FindByPackageAndDateRange(ctx context.Context, medicalPackageID, dateFrom, dateTo string) ([]models.SlotView, error)
}

// MedicalPackageRepository exposes the package catalog projection consumed
// by the slot generator.
type MedicalPackageRepository interface {
	FindActive(ctx context.Context) ([]models.MedicalPackage, error)
}

type SlotUsecase interface {
	CreateSlot(ctx context.Context, request *requests.CreateSlotRequest) (*responses.CreateSlotResponse, error)
	UpdateMaxQuantity(ctx context.Context, slotID string, request *requests.UpdateSlotMaxQuantityRequest) error
	FindSlots(ctx context.Context, request *requests.FindSlotsRequest) ([]responses.SlotResponse, error)
}
