package models

// Course represents a course offered by a department. Category is an explicit
// attribute rather than a prefix convention on the course type name.
type Course struct {
	ID           int64          `json:"id" db:"id"`
	Code         string         `json:"code" db:"code"`
	Name         string         `json:"name" db:"name"`
	Category     CourseCategory `json:"category" db:"category"`
	DepartmentID int64          `json:"departmentId" db:"department_id"`
	Semester     int            `json:"semester" db:"semester"`
	// SeatLimit caps every batch instantiation of this course.
	SeatLimit int `json:"seatLimit" db:"seat_limit"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
