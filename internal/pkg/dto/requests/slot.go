package requests

type CreateSlotRequest struct {
	MedicalPackageID string `json:"medical_package_id" validate:"required"`
	Date             string `json:"date" validate:"required"`
	Shift            string `json:"shift" validate:"required,oneof=MORNING AFTERNOON"`
	MaxQuantity      int    `json:"max_quantity" validate:"required,gt=0"`
}

type UpdateSlotMaxQuantityRequest struct {
	NewMaxQuantity int `json:"new_max_quantity" validate:"required,gt=0"`
}

type FindSlotsRequest struct {
	MedicalPackageID string
	DateFrom         string
	DateTo           string
}
