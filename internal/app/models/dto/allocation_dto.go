package dto

// RunAllocationRequest triggers an allocation run for one semester
type RunAllocationRequest struct {
	Semester int `json:"semester" binding:"required,min=1,max=2"`
}

// AllocationRunSummary reports the outcome of a completed run
type AllocationRunSummary struct {
	Semester        int `json:"semester"`
	StudentCount    int `json:"studentCount"`
	AllotmentCount  int `json:"allotmentCount"`
	MissCount       int `json:"missCount"`
	PreferencesUsed int `json:"preferencesUsed"`
}

// AllocationStatusResponse answers the double-run guard query
type AllocationStatusResponse struct {
	Semester      int    `json:"semester"`
	AcademicYear  string `json:"academicYear"`
	HasAllotments bool   `json:"hasAllotments"`
}

// IncompletePreferencesResponse lists students blocking a run
type IncompletePreferencesResponse struct {
	AdmissionNumbers []string `json:"admissionNumbers"`
}

// GenerateDummyPreferencesRequest fills randomized valid preferences for
// students who have none. Development mode only.
type GenerateDummyPreferencesRequest struct {
	Semester int `json:"semester" binding:"required,min=1,max=2"`
}
