package models

// CoursePreference is one ranked choice of a student for one paper slot.
// Rows are single-use input to the allocation engine and are deleted after a
// successful run.
type CoursePreference struct {
	ID               int64 `json:"id" db:"id"`
	StudentID        int64 `json:"studentId" db:"student_id"`
	BatchID          int64 `json:"batchId" db:"batch_id"`
	PreferenceNumber int   `json:"preferenceNumber" db:"preference_number"` // 1 = most preferred
	PaperNo          int   `json:"paperNo" db:"paper_no"`

	// Relations (populated when needed)
	Batch *Batch `json:"batch,omitempty"`
}
