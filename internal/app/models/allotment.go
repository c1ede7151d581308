package models

import (
	"time"
)

// CourseAllotment is the authoritative assignment of a student to a batch for
// one paper slot. At most one row per (student, paper) and per (student, batch).
type CourseAllotment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	BatchID   int64     `json:"batchId" db:"batch_id"`
	PaperNo   int       `json:"paperNo" db:"paper_no"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Batch   *Batch   `json:"batch,omitempty"`
}
