// Package allocation implements the multi-pass course allotment algorithm.
// The engine is a pure in-memory computation over a snapshot of one
// semester's students, preferences, batches and quota settings; persistence
// happens in the service layer, inside a single transaction.
package allocation

import (
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
)

// Student is the engine's view of one student
type Student struct {
	ID              int64
	AdmissionNumber string
	DepartmentID    int64
	Category        models.AdmissionCategory
	// NormalizedMarks orders semester-1 merit.
	NormalizedMarks int
	// FirstSemMarks orders semester-2 merit; nil sorts after every value.
	FirstSemMarks *float64
}

// Batch is the engine's view of one enrollable batch
type Batch struct {
	ID           int64
	DepartmentID int64
	Category     models.CourseCategory
	SeatLimit    int
	SeatsTaken   int
	Active       bool
}

// Preference is one ranked choice for one paper slot
type Preference struct {
	StudentID int64
	BatchID   int64
	PaperNo   int
	Rank      int
}

// Settings is one department's quota configuration for Pass 3
type Settings struct {
	DepartmentID       int64
	Strength           int
	DepartmentQuotaPct float64
	GeneralQuotaPct    float64
	ScStQuotaPct       float64
	OtherQuotaPct      float64
}

// Input is the complete snapshot the engine runs over
type Input struct {
	Semester    int
	Students    []Student
	Batches     []Batch
	Preferences []Preference
	Settings    []Settings
}

// Allotment is one (student, batch, paper) assignment produced by the engine
type Allotment struct {
	StudentID int64
	BatchID   int64
	PaperNo   int
}

// Miss records a student left unallotted for a paper. Misses are outcomes,
// not errors.
type Miss struct {
	StudentID       int64
	AdmissionNumber string
	PaperNo         int
}

// Result is the engine's output for one run
type Result struct {
	Allotments []Allotment
	Misses     []Miss
}
