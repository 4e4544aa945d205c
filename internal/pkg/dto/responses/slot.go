package responses

type CreateSlotResponse struct {
	SlotID string `json:"slot_id"`
}

type SlotResponse struct {
	SlotID           string `json:"slot_id"`
	MedicalPackageID string `json:"medical_package_id"`
	Date             string `json:"date"`
	Shift            string `json:"shift"`
	MaxQuantity      int    `json:"max_quantity"`
	Remaining        int    `json:"remaining"`
}
