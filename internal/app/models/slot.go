package models

import (
	"time"

	"clinic-booking-service/internal/pkg/messages"
)

// SlotView is the read model row maintained by the slot projection.
type SlotView struct {
	SlotID           string         `json:"slot_id"`
	MedicalPackageID string         `json:"medical_package_id"`
	Date             string         `json:"date"`
	Shift            messages.Shift `json:"shift"`
	MaxQuantity      int            `json:"max_quantity"`
	Remaining        int            `json:"remaining"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// MedicalPackage is the minimal projection of the package catalog the slot
// generator needs. The catalog itself is owned by an external service.
type MedicalPackage struct {
	ID     string
	Name   string
	Active bool
}
