package models

// Batch is a (course, academic year, part) instantiation of a course — the
// unit students are actually allotted into.
type Batch struct {
	ID       int64  `json:"id" db:"id"`
	CourseID int64  `json:"courseId" db:"course_id"`
	Year     string `json:"year" db:"year"`
	Part     int    `json:"part" db:"part"` // 1 for odd semesters, 2 for even
	// Status gates whether the batch currently accepts allotments.
	Status bool `json:"status" db:"status"`
	// SeatsTaken is the denormalized fill counter, maintained atomically
	// inside the allocation transaction. 0 <= SeatsTaken <= Course.SeatLimit.
	SeatsTaken int `json:"seatsTaken" db:"seats_taken"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// SeatsLeft returns the remaining capacity. Requires Course to be populated.
func (b *Batch) SeatsLeft() int {
	if b.Course == nil {
		return 0
	}
	return b.Course.SeatLimit - b.SeatsTaken
}
