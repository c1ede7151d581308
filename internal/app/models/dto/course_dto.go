package dto

// CreateCourseRequest creates a course
type CreateCourseRequest struct {
	Code         string `json:"code" binding:"required" example:"ECO1CJ101"`
	Name         string `json:"name" binding:"required" example:"Introductory Microeconomics"`
	Category     string `json:"category" binding:"required" example:"DSC"`
	DepartmentID int64  `json:"departmentId" binding:"required"`
	Semester     int    `json:"semester" binding:"required,min=1,max=2"`
	SeatLimit    int    `json:"seatLimit" binding:"required,min=1"`
}

// UpdateCourseRequest updates mutable course fields
type UpdateCourseRequest struct {
	Name      *string `json:"name,omitempty"`
	SeatLimit *int    `json:"seatLimit,omitempty"`
}

// CourseFilter narrows course/batch listings
type CourseFilter struct {
	Category     string `form:"category"`
	DepartmentID int64  `form:"departmentId"`
	Semester     int    `form:"semester"`
}

// CreateBatchRequest instantiates a course as an enrollable batch
type CreateBatchRequest struct {
	CourseID int64  `json:"courseId" binding:"required"`
	Year     string `json:"year" binding:"required" example:"2025-26"`
	Part     int    `json:"part" binding:"required,min=1,max=2"`
}

// SetBatchStatusRequest toggles whether a batch accepts allotments
type SetBatchStatusRequest struct {
	Status *bool `json:"status" binding:"required"`
}
