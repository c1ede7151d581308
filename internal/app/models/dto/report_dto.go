package dto

// AllotmentRow is one student's allocation result. Papers holds the allotted
// course display name per slot, "-" where no allotment exists.
type AllotmentRow struct {
	AdmissionNumber string   `json:"admissionNumber"`
	Name            string   `json:"name"`
	Department      string   `json:"department"`
	Pathway         string   `json:"pathway"`
	Category        string   `json:"admissionCategory"`
	Papers          []string `json:"papers"`
}

// AllotmentReport is the full per-semester result set with its display headers
type AllotmentReport struct {
	Semester     int            `json:"semester"`
	PaperHeaders []string       `json:"paperHeaders"`
	Rows         []AllotmentRow `json:"rows"`
}
