package dto

// CreateStudentRequest creates a student record. DOB uses YYYY-MM-DD.
type CreateStudentRequest struct {
	AdmissionNumber string  `json:"admissionNumber" binding:"required" example:"ADM2025001"`
	Name            string  `json:"name" binding:"required"`
	DOB             string  `json:"dob" binding:"required" example:"2006-04-17"`
	Email           string  `json:"email" binding:"required,email"`
	DepartmentID    int64   `json:"departmentId" binding:"required"`
	Category        string  `json:"admissionCategory" binding:"required" example:"General"`
	PathwayID       int64   `json:"pathwayId" binding:"required"`
	CurrentSem      int     `json:"currentSem" binding:"required,min=1,max=2"`
	NormalizedMarks int     `json:"normalizedMarks" binding:"required"`
	FirstSemMarks   *float64 `json:"firstSemMarks,omitempty"`
}

// UpdateStudentRequest updates mutable student fields
type UpdateStudentRequest struct {
	Name            *string  `json:"name,omitempty"`
	Email           *string  `json:"email,omitempty"`
	DepartmentID    *int64   `json:"departmentId,omitempty"`
	Category        *string  `json:"admissionCategory,omitempty"`
	PathwayID       *int64   `json:"pathwayId,omitempty"`
	CurrentSem      *int     `json:"currentSem,omitempty"`
	NormalizedMarks *int     `json:"normalizedMarks,omitempty"`
	FirstSemMarks   *float64 `json:"firstSemMarks,omitempty"`
}
