package dto

// BatchOption is one selectable batch in the preference form
type BatchOption struct {
	BatchID        int64  `json:"batchId"`
	CourseCode     string `json:"courseCode"`
	CourseName     string `json:"courseName"`
	DepartmentName string `json:"departmentName"`
}

// PaperOptions is the candidate set and required choice count for one paper slot
type PaperOptions struct {
	PaperNo int           `json:"paperNo"`
	Label   string        `json:"label"`
	Choices int           `json:"choices"`
	Options []BatchOption `json:"options"`
}

// PreferenceFormResponse is the full form shape for one student
type PreferenceFormResponse struct {
	Semester  int            `json:"semester"`
	Pathway   string         `json:"pathway"`
	Papers    []PaperOptions `json:"papers"`
	Submitted bool           `json:"submitted"`
}

// PaperSelection is a student's ranked batch list for one paper slot,
// ordered most preferred first.
type PaperSelection struct {
	PaperNo  int     `json:"paperNo" binding:"required,min=1,max=4"`
	BatchIDs []int64 `json:"batchIds" binding:"required,min=1"`
}

// SubmitPreferencesRequest is the complete ranked submission for a student
type SubmitPreferencesRequest struct {
	Selections []PaperSelection `json:"selections" binding:"required,min=4,max=4"`
}
