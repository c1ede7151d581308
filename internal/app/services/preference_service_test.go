package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
)

func batchWithCourse(id int64, category models.CourseCategory, departmentID int64) *models.Batch {
	return &models.Batch{
		ID:       id,
		CourseID: id,
		Status:   true,
		Course: &models.Course{
			ID:           id,
			Category:     category,
			DepartmentID: departmentID,
		},
	}
}

// A shared batch pool: two home-department DSC batches, three outside DSC
// batches and two outside MDC batches, home department being 1.
func rulePool() []*models.Batch {
	return []*models.Batch{
		batchWithCourse(1, models.CourseDSC, 1),
		batchWithCourse(2, models.CourseDSC, 1),
		batchWithCourse(3, models.CourseDSC, 2),
		batchWithCourse(4, models.CourseDSC, 3),
		batchWithCourse(5, models.CourseDSC, 4),
		batchWithCourse(6, models.CourseMDC, 2),
		batchWithCourse(7, models.CourseMDC, 3),
	}
}

func batchIDs(batches []*models.Batch) []int64 {
	ids := make([]int64, 0, len(batches))
	for _, b := range batches {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestEligibleBatchesFirstSemester(t *testing.T) {
	tests := []struct {
		name     string
		pathway  string
		paperNo  int
		expected []int64
	}{
		{"single major slot 1 is home DSC", models.PathwaySingleMajor, models.PaperDSC1, []int64{1, 2}},
		{"single major slot 2 is outside DSC", models.PathwaySingleMajor, models.PaperDSC2, []int64{3, 4, 5}},
		{"single major slot 3 is outside DSC", models.PathwaySingleMajor, models.PaperDSC3, []int64{3, 4, 5}},
		{"single major slot 4 is outside MDC", models.PathwaySingleMajor, models.PaperMDC, []int64{6, 7}},
		{"minor pathway mirrors single major", models.PathwaySingleMajorMinor, models.PaperDSC2, []int64{3, 4, 5}},
		{"double major slot 1 is home DSC", models.PathwayDoubleMajor, models.PaperDSC1, []int64{1, 2}},
		{"double major slot 2 stays home", models.PathwayDoubleMajor, models.PaperDSC2, []int64{1, 2}},
		{"double major slot 3 is outside DSC", models.PathwayDoubleMajor, models.PaperDSC3, []int64{3, 4, 5}},
		{"double major slot 4 is outside MDC", models.PathwayDoubleMajor, models.PaperMDC, []int64{6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := eligibility{HomeDepartmentID: 1, Pathway: tt.pathway, Semester: 1}
			assert.Equal(t, tt.expected, batchIDs(eligibleBatches(e, tt.paperNo, rulePool())))
		})
	}
}

func TestEligibleBatchesSecondSemesterDoubleMajor(t *testing.T) {
	// The second major locked in semester 1: slot 3 was allotted in
	// department 3, slot 1 in the home department 1.
	e := eligibility{
		HomeDepartmentID:     1,
		Pathway:              models.PathwayDoubleMajor,
		Semester:             2,
		PrimaryAllotDeptID:   1,
		SecondaryAllotDeptID: 3,
	}
	pool := rulePool()

	assert.Equal(t, []int64{4}, batchIDs(eligibleBatches(e, models.PaperDSC1, pool)),
		"slot 1 follows the semester-1 slot-3 department")
	assert.Equal(t, []int64{4}, batchIDs(eligibleBatches(e, models.PaperDSC2, pool)),
		"slot 2 follows the semester-1 slot-3 department")
	assert.Equal(t, []int64{1, 2}, batchIDs(eligibleBatches(e, models.PaperDSC3, pool)),
		"slot 3 follows the semester-1 slot-1 department")
	assert.Equal(t, []int64{6}, batchIDs(eligibleBatches(e, models.PaperMDC, pool)),
		"slot 4 stays outside both the home and second-major departments")
}

func TestEligibleBatchesSecondSemesterOtherPathwaysMirrorHome(t *testing.T) {
	e := eligibility{HomeDepartmentID: 1, Pathway: models.PathwaySingleMajor, Semester: 2}
	pool := rulePool()

	assert.Equal(t, []int64{1, 2}, batchIDs(eligibleBatches(e, models.PaperDSC1, pool)))
	assert.Equal(t, []int64{3, 4, 5}, batchIDs(eligibleBatches(e, models.PaperDSC2, pool)))
}

func TestSlotChoiceCount(t *testing.T) {
	singleMajor := eligibility{Pathway: models.PathwaySingleMajor}
	doubleMajor := eligibility{Pathway: models.PathwayDoubleMajor}

	tests := []struct {
		name      string
		e         eligibility
		paperNo   int
		available int
		expected  int
	}{
		{"slot 1 takes one choice", singleMajor, models.PaperDSC1, 2, 1},
		{"slot 2 caps at three", singleMajor, models.PaperDSC2, 5, 3},
		{"slot 2 shrinks to available", singleMajor, models.PaperDSC2, 2, 2},
		{"slot 3 caps at three", singleMajor, models.PaperDSC3, 4, 3},
		{"mdc ranks everything", singleMajor, models.PaperMDC, 6, 6},
		{"double major slot 2 leaves room for slot 1", doubleMajor, models.PaperDSC2, 3, 2},
		{"double major slot 2 with a single batch", doubleMajor, models.PaperDSC2, 1, 0},
		{"double major slot 3 caps at three", doubleMajor, models.PaperDSC3, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slotChoiceCount(tt.e, tt.paperNo, tt.available))
		})
	}
}

func TestPaperLabel(t *testing.T) {
	assert.Equal(t, "DSC 1", paperLabel(1, models.PaperDSC1))
	assert.Equal(t, "DSC 3", paperLabel(1, models.PaperDSC3))
	assert.Equal(t, "MDC", paperLabel(1, models.PaperMDC))
	assert.Equal(t, "DSC 4", paperLabel(2, models.PaperDSC1))
	assert.Equal(t, "DSC 6", paperLabel(2, models.PaperDSC3))
	assert.Equal(t, "MDC", paperLabel(2, models.PaperMDC))
}
