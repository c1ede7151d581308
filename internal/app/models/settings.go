package models

// AllocationSettings is the per-department quota configuration consumed by
// Pass 3 of the allocation engine. Created once per major department before a
// run; read-only during allocation.
type AllocationSettings struct {
	ID           int64 `json:"id" db:"id"`
	DepartmentID int64 `json:"departmentId" db:"department_id"`
	// Strength is the expected cohort size of the department.
	Strength int `json:"strength" db:"strength"`
	// DepartmentQuotaPercentage is the fraction of strength reserved as MDC
	// seats offered to the department's own students in Phase A.
	DepartmentQuotaPercentage float64 `json:"departmentQuotaPercentage" db:"department_quota_percentage"`
	// The three category percentages split the department quota and must sum
	// to 100 (validated at save time, never at allocation time).
	GeneralQuotaPercentage float64 `json:"generalQuotaPercentage" db:"general_quota_percentage"`
	ScStQuotaPercentage    float64 `json:"scStQuotaPercentage" db:"sc_st_quota_percentage"`
	OtherQuotaPercentage   float64 `json:"otherQuotaPercentage" db:"other_quota_percentage"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
