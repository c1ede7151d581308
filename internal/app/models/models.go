package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleStudent RoleType = "STUDENT"
)

// AdmissionCategory is the reservation category a student was admitted under
type AdmissionCategory string

const (
	CategoryGeneral    AdmissionCategory = "General"
	CategorySC         AdmissionCategory = "SC"
	CategoryST         AdmissionCategory = "ST"
	CategoryPWD        AdmissionCategory = "PWD"
	CategoryEWS        AdmissionCategory = "EWS"
	CategorySports     AdmissionCategory = "Sports"
	CategoryManagement AdmissionCategory = "Management"
)

// AdmissionCategories lists every valid admission category
var AdmissionCategories = []AdmissionCategory{
	CategoryGeneral,
	CategorySC,
	CategoryST,
	CategoryPWD,
	CategoryEWS,
	CategorySports,
	CategoryManagement,
}

// Valid reports whether c is a known admission category
func (c AdmissionCategory) Valid() bool {
	for _, known := range AdmissionCategories {
		if c == known {
			return true
		}
	}
	return false
}

// CourseCategory distinguishes core discipline-specific courses from
// multidisciplinary ones
type CourseCategory string

const (
	CourseDSC CourseCategory = "DSC"
	CourseMDC CourseCategory = "MDC"
)

// Valid reports whether c is a known course category
func (c CourseCategory) Valid() bool {
	return c == CourseDSC || c == CourseMDC
}

// Pathway names. Preference capture rules branch on these; allocation itself
// is pathway-agnostic once preferences exist.
const (
	PathwaySingleMajor      = "Single Major"
	PathwayDoubleMajor      = "Double Major"
	PathwaySingleMajorMinor = "Single Major with Single/Double Minor"
)

// Paper slot numbers. Each student fills four per semester.
const (
	PaperDSC1 = 1 // primary major course, home department
	PaperDSC2 = 2 // secondary course
	PaperDSC3 = 3 // secondary course
	PaperMDC  = 4 // multidisciplinary course

	NumPapers = 4
)

// PaperNumbers lists the slots in processing order
var PaperNumbers = []int{PaperDSC1, PaperDSC2, PaperDSC3, PaperMDC}
