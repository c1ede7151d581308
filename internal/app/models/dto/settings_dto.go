package dto

// SaveAllocationSettingsRequest creates or updates per-department quota
// configuration. The three category percentages must sum to 100.
type SaveAllocationSettingsRequest struct {
	DepartmentID              int64   `json:"departmentId" binding:"required"`
	Strength                  int     `json:"strength" binding:"required,min=1"`
	DepartmentQuotaPercentage float64 `json:"departmentQuotaPercentage" binding:"required"`
	GeneralQuotaPercentage    float64 `json:"generalQuotaPercentage" binding:"required"`
	ScStQuotaPercentage       float64 `json:"scStQuotaPercentage" binding:"required"`
	OtherQuotaPercentage      float64 `json:"otherQuotaPercentage" binding:"required"`
}
