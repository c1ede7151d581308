package models

// Department represents an academic department
type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	// IsMajor marks departments that participate in quota-managed MDC
	// allocation and therefore require an AllocationSettings row.
	IsMajor bool `json:"isMajor" db:"is_major"`
}
