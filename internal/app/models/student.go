package models

import (
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID              int64             `json:"id" db:"id"`
	AdmissionNumber string            `json:"admissionNumber" db:"admission_number"`
	Name            string            `json:"name" db:"name"`
	DOB             time.Time         `json:"dob" db:"dob"`
	Email           string            `json:"email" db:"email"`
	DepartmentID    int64             `json:"departmentId" db:"department_id"`
	Category        AdmissionCategory `json:"admissionCategory" db:"admission_category"`
	PathwayID       int64             `json:"pathwayId" db:"pathway_id"`
	CurrentSem      int               `json:"currentSem" db:"current_sem"`
	// NormalizedMarks orders semester-1 merit; FirstSemMarks replaces it for
	// semester-2 merit once first-semester results are published.
	NormalizedMarks int      `json:"normalizedMarks" db:"normalized_marks"`
	FirstSemMarks   *float64 `json:"firstSemMarks,omitempty" db:"first_sem_marks"`
	UserID          *int64   `json:"userId,omitempty" db:"user_id"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
	Pathway    *Pathway    `json:"pathway,omitempty"`
}
