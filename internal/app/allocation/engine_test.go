package allocation

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
)

func f64(v float64) *float64 { return &v }

func run(t *testing.T, in Input) Result {
	t.Helper()
	return NewEngine(in, zerolog.Nop()).Run()
}

func allotmentFor(res Result, studentID int64, paperNo int) (Allotment, bool) {
	for _, a := range res.Allotments {
		if a.StudentID == studentID && a.PaperNo == paperNo {
			return a, true
		}
	}
	return Allotment{}, false
}

func missesFor(res Result, paperNo int) []Miss {
	var misses []Miss
	for _, m := range res.Misses {
		if m.PaperNo == paperNo {
			misses = append(misses, m)
		}
	}
	return misses
}

func batchFor(t *testing.T, res Result, studentID int64, paperNo int) int64 {
	t.Helper()
	a, ok := allotmentFor(res, studentID, paperNo)
	require.True(t, ok, "student %d should hold paper %d", studentID, paperNo)
	return a.BatchID
}

// dscBatch and mdcBatch build active batches with no seats taken.
func dscBatch(id, deptID int64, seats int) Batch {
	return Batch{ID: id, DepartmentID: deptID, Category: models.CourseDSC, SeatLimit: seats, Active: true}
}

func mdcBatch(id, deptID int64, seats int) Batch {
	return Batch{ID: id, DepartmentID: deptID, Category: models.CourseMDC, SeatLimit: seats, Active: true}
}

func TestPrimaryPassFollowsAdmissionNumberOrder(t *testing.T) {
	in := Input{
		Semester: 1,
		Students: []Student{
			{ID: 1, AdmissionNumber: "A002", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 99},
			{ID: 2, AdmissionNumber: "A001", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 10},
		},
		Batches: []Batch{dscBatch(10, 1, 1), dscBatch(11, 1, 5)},
		Preferences: []Preference{
			{StudentID: 1, BatchID: 10, PaperNo: models.PaperDSC1, Rank: 1},
			{StudentID: 1, BatchID: 11, PaperNo: models.PaperDSC1, Rank: 2},
			{StudentID: 2, BatchID: 10, PaperNo: models.PaperDSC1, Rank: 1},
			{StudentID: 2, BatchID: 11, PaperNo: models.PaperDSC1, Rank: 2},
		},
	}

	res := run(t, in)

	// A001 files first regardless of marks and takes the contested seat.
	assert.Equal(t, int64(10), batchFor(t, res, 2, models.PaperDSC1))
	assert.Equal(t, int64(11), batchFor(t, res, 1, models.PaperDSC1))
}

func TestSecondaryPassFollowsMeritOrder(t *testing.T) {
	in := Input{
		Semester: 1,
		Students: []Student{
			{ID: 1, AdmissionNumber: "A001", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 40},
			{ID: 2, AdmissionNumber: "A002", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 95},
		},
		Batches: []Batch{dscBatch(20, 2, 1), dscBatch(21, 3, 5)},
		Preferences: []Preference{
			{StudentID: 1, BatchID: 20, PaperNo: models.PaperDSC2, Rank: 1},
			{StudentID: 1, BatchID: 21, PaperNo: models.PaperDSC2, Rank: 2},
			{StudentID: 2, BatchID: 20, PaperNo: models.PaperDSC2, Rank: 1},
			{StudentID: 2, BatchID: 21, PaperNo: models.PaperDSC2, Rank: 2},
		},
	}

	res := run(t, in)

	// Higher normalized marks win the single contested seat.
	assert.Equal(t, int64(20), batchFor(t, res, 2, models.PaperDSC2))
	assert.Equal(t, int64(21), batchFor(t, res, 1, models.PaperDSC2))
}

func TestSemesterTwoMeritUsesFirstSemMarksWithNullsLast(t *testing.T) {
	in := Input{
		Semester: 2,
		Students: []Student{
			{ID: 1, AdmissionNumber: "A001", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 100, FirstSemMarks: nil},
			{ID: 2, AdmissionNumber: "A002", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 10, FirstSemMarks: f64(55.5)},
			{ID: 3, AdmissionNumber: "A003", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 10, FirstSemMarks: f64(91.0)},
		},
		Batches: []Batch{dscBatch(20, 2, 1), dscBatch(21, 3, 1), dscBatch(22, 4, 5)},
		Preferences: func() []Preference {
			var prefs []Preference
			for _, id := range []int64{1, 2, 3} {
				prefs = append(prefs,
					Preference{StudentID: id, BatchID: 20, PaperNo: models.PaperDSC2, Rank: 1},
					Preference{StudentID: id, BatchID: 21, PaperNo: models.PaperDSC2, Rank: 2},
					Preference{StudentID: id, BatchID: 22, PaperNo: models.PaperDSC2, Rank: 3},
				)
			}
			return prefs
		}(),
	}

	res := run(t, in)

	// 91.0 beats 55.5; the student with no first-semester marks goes last
	// even though their entrance marks are highest.
	assert.Equal(t, int64(20), batchFor(t, res, 3, models.PaperDSC2))
	assert.Equal(t, int64(21), batchFor(t, res, 2, models.PaperDSC2))
	assert.Equal(t, int64(22), batchFor(t, res, 1, models.PaperDSC2))
}

func TestPreferenceWalkSkipsFullAndInactiveBatches(t *testing.T) {
	full := dscBatch(10, 1, 1)
	full.SeatsTaken = 1
	inactive := dscBatch(11, 1, 5)
	inactive.Active = false

	in := Input{
		Semester: 1,
		Students: []Student{
			{ID: 1, AdmissionNumber: "A001", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 50},
		},
		Batches: []Batch{full, inactive, dscBatch(12, 1, 5)},
		Preferences: []Preference{
			{StudentID: 1, BatchID: 10, PaperNo: models.PaperDSC1, Rank: 1},
			{StudentID: 1, BatchID: 11, PaperNo: models.PaperDSC1, Rank: 2},
			{StudentID: 1, BatchID: 12, PaperNo: models.PaperDSC1, Rank: 3},
		},
	}

	res := run(t, in)

	assert.Equal(t, int64(12), batchFor(t, res, 1, models.PaperDSC1))
	assert.Empty(t, missesFor(res, models.PaperDSC1))
}

func TestStudentNeverHoldsSameBatchTwice(t *testing.T) {
	in := Input{
		Semester: 1,
		Students: []Student{
			{ID: 1, AdmissionNumber: "A001", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 50},
		},
		Batches: []Batch{dscBatch(20, 2, 5), dscBatch(21, 3, 5)},
		Preferences: []Preference{
			// Both secondary slots rank batch 20 first.
			{StudentID: 1, BatchID: 20, PaperNo: models.PaperDSC2, Rank: 1},
			{StudentID: 1, BatchID: 21, PaperNo: models.PaperDSC2, Rank: 2},
			{StudentID: 1, BatchID: 20, PaperNo: models.PaperDSC3, Rank: 1},
			{StudentID: 1, BatchID: 21, PaperNo: models.PaperDSC3, Rank: 2},
		},
	}

	res := run(t, in)

	assert.Equal(t, int64(20), batchFor(t, res, 1, models.PaperDSC2))
	assert.Equal(t, int64(21), batchFor(t, res, 1, models.PaperDSC3))
}

func TestAllocationMissIsRecordedNotFatal(t *testing.T) {
	in := Input{
		Semester: 1,
		Students: []Student{
			{ID: 1, AdmissionNumber: "A001", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 50},
			{ID: 2, AdmissionNumber: "A002", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 40},
		},
		Batches: []Batch{dscBatch(10, 1, 1)},
		Preferences: []Preference{
			{StudentID: 1, BatchID: 10, PaperNo: models.PaperDSC1, Rank: 1},
			{StudentID: 2, BatchID: 10, PaperNo: models.PaperDSC1, Rank: 1},
		},
	}

	res := run(t, in)

	assert.Len(t, res.Allotments, 1)
	require.NotEmpty(t, res.Misses)
	assert.Equal(t, "A002", res.Misses[0].AdmissionNumber)
	assert.Equal(t, models.PaperDSC1, res.Misses[0].PaperNo)
}

// TestQuotaPhaseSeedsDepartmentIntake walks a full department scenario:
// strength 48 with a 20% department quota yields 10 reserved seats split
// 60/20/20 into 6 general, 2 SC/ST and 2 other seats. With 8 general
// students, 1 SC student and nobody in the other pool, exactly 7 students
// are seated by quota; the remaining 2 fall through to the fallback phase.
func TestQuotaPhaseSeedsDepartmentIntake(t *testing.T) {
	var students []Student
	var prefs []Preference
	for i := 1; i <= 8; i++ {
		students = append(students, Student{
			ID:              int64(i),
			AdmissionNumber: fmt.Sprintf("A%03d", i),
			DepartmentID:    1,
			Category:        models.CategoryGeneral,
			NormalizedMarks: 100 - i, // A001 has the best merit
		})
	}
	students = append(students, Student{
		ID: 9, AdmissionNumber: "A009", DepartmentID: 1,
		Category: models.CategorySC, NormalizedMarks: 1,
	})
	for _, s := range students {
		prefs = append(prefs,
			Preference{StudentID: s.ID, BatchID: 100, PaperNo: models.PaperMDC, Rank: 1},
			Preference{StudentID: s.ID, BatchID: 101, PaperNo: models.PaperMDC, Rank: 2},
		)
	}

	in := Input{
		Semester:    1,
		Students:    students,
		Batches:     []Batch{mdcBatch(100, 2, 7), mdcBatch(101, 3, 20)},
		Preferences: prefs,
		Settings: []Settings{{
			DepartmentID:       1,
			Strength:           48,
			DepartmentQuotaPct: 20,
			GeneralQuotaPct:    60,
			ScStQuotaPct:       20,
			OtherQuotaPct:      20,
		}},
	}

	res := run(t, in)

	// Quota window: top 6 general students plus the lone SC student take
	// the 7 seats of the preferred batch during the quota phase.
	for _, id := range []int64{1, 2, 3, 4, 5, 6, 9} {
		assert.Equal(t, int64(100), batchFor(t, res, id, models.PaperMDC), "student %d", id)
	}
	// The two lowest-merit general students missed the window; the
	// preferred batch is full by fallback time, so they land in batch 101.
	for _, id := range []int64{7, 8} {
		assert.Equal(t, int64(101), batchFor(t, res, id, models.PaperMDC), "student %d", id)
	}
	assert.Empty(t, missesFor(res, models.PaperMDC))
}

func TestQuotaShortfallDoesNotWidenOtherGroups(t *testing.T) {
	// Quota 60/20/20 over 10 seats gives 6 general seats. Eight general
	// students and no SC/ST or other students: the unused reserved seats
	// must not let general students 7 and 8 into the quota phase.
	var students []Student
	var prefs []Preference
	for i := 1; i <= 8; i++ {
		students = append(students, Student{
			ID:              int64(i),
			AdmissionNumber: fmt.Sprintf("A%03d", i),
			DepartmentID:    1,
			Category:        models.CategoryGeneral,
			NormalizedMarks: 100 - i,
		})
	}
	for _, s := range students {
		prefs = append(prefs,
			Preference{StudentID: s.ID, BatchID: 100, PaperNo: models.PaperMDC, Rank: 1},
			Preference{StudentID: s.ID, BatchID: 101, PaperNo: models.PaperMDC, Rank: 2},
		)
	}

	in := Input{
		Semester:    1,
		Students:    students,
		Batches:     []Batch{mdcBatch(100, 2, 6), mdcBatch(101, 3, 20)},
		Preferences: prefs,
		Settings: []Settings{{
			DepartmentID:       1,
			Strength:           48,
			DepartmentQuotaPct: 20,
			GeneralQuotaPct:    60,
			ScStQuotaPct:       20,
			OtherQuotaPct:      20,
		}},
	}

	res := run(t, in)

	for _, id := range []int64{1, 2, 3, 4, 5, 6} {
		assert.Equal(t, int64(100), batchFor(t, res, id, models.PaperMDC), "student %d", id)
	}
	for _, id := range []int64{7, 8} {
		assert.Equal(t, int64(101), batchFor(t, res, id, models.PaperMDC), "student %d", id)
	}
}

func TestFallbackAssignsLeastFilledBatchBeyondPreferences(t *testing.T) {
	full := mdcBatch(100, 2, 1)
	full.SeatsTaken = 1
	partlyFilled := mdcBatch(101, 3, 10)
	partlyFilled.SeatsTaken = 6
	emptier := mdcBatch(102, 4, 10)
	emptier.SeatsTaken = 2

	in := Input{
		Semester: 1,
		Students: []Student{
			{ID: 1, AdmissionNumber: "A001", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 50},
		},
		Batches: []Batch{full, partlyFilled, emptier},
		Preferences: []Preference{
			// The only ranked choice is full, so the fallback must place
			// the student in the emptiest remaining batch.
			{StudentID: 1, BatchID: 100, PaperNo: models.PaperMDC, Rank: 1},
		},
	}

	res := run(t, in)

	assert.Equal(t, int64(102), batchFor(t, res, 1, models.PaperMDC))
	assert.Empty(t, missesFor(res, models.PaperMDC))
}

func TestFallbackPrefersLowerBatchIDOnEqualFill(t *testing.T) {
	in := Input{
		Semester: 1,
		Students: []Student{
			{ID: 1, AdmissionNumber: "A001", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 50},
		},
		Batches: []Batch{mdcBatch(102, 3, 5), mdcBatch(101, 2, 5)},
	}

	res := run(t, in)

	assert.Equal(t, int64(101), batchFor(t, res, 1, models.PaperMDC))
}

func TestFallbackMissOnlyWhenNoCapacityAnywhere(t *testing.T) {
	full := mdcBatch(100, 2, 1)
	full.SeatsTaken = 1
	inactive := mdcBatch(101, 3, 10)
	inactive.Active = false

	in := Input{
		Semester: 1,
		Students: []Student{
			{ID: 1, AdmissionNumber: "A001", DepartmentID: 1, Category: models.CategoryGeneral, NormalizedMarks: 50},
		},
		Batches: []Batch{full, inactive},
	}

	res := run(t, in)

	_, ok := allotmentFor(res, 1, models.PaperMDC)
	assert.False(t, ok)
	require.Len(t, missesFor(res, models.PaperMDC), 1)
}

func TestRunUpholdsGlobalInvariants(t *testing.T) {
	// Mixed cohort crossing two departments with tight capacities.
	var students []Student
	var prefs []Preference
	categories := []models.AdmissionCategory{
		models.CategoryGeneral, models.CategorySC, models.CategoryEWS,
		models.CategoryGeneral, models.CategoryST, models.CategoryManagement,
	}
	for i := 1; i <= 6; i++ {
		dept := int64(1)
		if i > 3 {
			dept = 2
		}
		students = append(students, Student{
			ID:              int64(i),
			AdmissionNumber: fmt.Sprintf("B%03d", i),
			DepartmentID:    dept,
			Category:        categories[i-1],
			NormalizedMarks: i * 10,
		})
	}
	batches := []Batch{
		dscBatch(10, 1, 2), dscBatch(11, 2, 2),
		dscBatch(20, 1, 3), dscBatch(21, 2, 3), dscBatch(22, 3, 2),
		mdcBatch(30, 1, 3), mdcBatch(31, 2, 3),
	}
	for _, s := range students {
		home := int64(10)
		away := int64(11)
		mdc := int64(31)
		if s.DepartmentID == 2 {
			home, away, mdc = 11, 10, 30
		}
		prefs = append(prefs,
			Preference{StudentID: s.ID, BatchID: home, PaperNo: models.PaperDSC1, Rank: 1},
			Preference{StudentID: s.ID, BatchID: away, PaperNo: models.PaperDSC2, Rank: 1},
			Preference{StudentID: s.ID, BatchID: 22, PaperNo: models.PaperDSC2, Rank: 2},
			Preference{StudentID: s.ID, BatchID: 20, PaperNo: models.PaperDSC3, Rank: 1},
			Preference{StudentID: s.ID, BatchID: 21, PaperNo: models.PaperDSC3, Rank: 2},
			Preference{StudentID: s.ID, BatchID: mdc, PaperNo: models.PaperMDC, Rank: 1},
		)
	}
	in := Input{
		Semester:    1,
		Students:    students,
		Batches:     batches,
		Preferences: prefs,
		Settings: []Settings{
			{DepartmentID: 1, Strength: 30, DepartmentQuotaPct: 10, GeneralQuotaPct: 60, ScStQuotaPct: 20, OtherQuotaPct: 20},
			{DepartmentID: 2, Strength: 30, DepartmentQuotaPct: 10, GeneralQuotaPct: 60, ScStQuotaPct: 20, OtherQuotaPct: 20},
		},
	}

	res := run(t, in)

	seatLimits := make(map[int64]int)
	taken := make(map[int64]int)
	for _, b := range batches {
		seatLimits[b.ID] = b.SeatLimit
		taken[b.ID] = b.SeatsTaken
	}
	slotSeen := make(map[string]bool)
	batchSeen := make(map[string]bool)
	for _, a := range res.Allotments {
		taken[a.BatchID]++
		assert.LessOrEqual(t, taken[a.BatchID], seatLimits[a.BatchID],
			"batch %d over capacity", a.BatchID)

		slotKey := fmt.Sprintf("%d/%d", a.StudentID, a.PaperNo)
		assert.False(t, slotSeen[slotKey], "duplicate slot %s", slotKey)
		slotSeen[slotKey] = true

		batchKey := fmt.Sprintf("%d/%d", a.StudentID, a.BatchID)
		assert.False(t, batchSeen[batchKey], "student %d holds batch %d twice", a.StudentID, a.BatchID)
		batchSeen[batchKey] = true
	}
}

func TestRunIsDeterministic(t *testing.T) {
	build := func() Input {
		var students []Student
		var prefs []Preference
		for i := 1; i <= 10; i++ {
			students = append(students, Student{
				ID:              int64(i),
				AdmissionNumber: fmt.Sprintf("C%03d", i),
				DepartmentID:    int64(1 + i%2),
				Category:        models.AdmissionCategories[i%len(models.AdmissionCategories)],
				NormalizedMarks: (i * 7) % 20, // deliberate merit ties
			})
			prefs = append(prefs,
				Preference{StudentID: int64(i), BatchID: 10, PaperNo: models.PaperDSC1, Rank: 1},
				Preference{StudentID: int64(i), BatchID: 11, PaperNo: models.PaperDSC1, Rank: 2},
				Preference{StudentID: int64(i), BatchID: 20, PaperNo: models.PaperDSC2, Rank: 1},
				Preference{StudentID: int64(i), BatchID: 21, PaperNo: models.PaperDSC2, Rank: 2},
				Preference{StudentID: int64(i), BatchID: 21, PaperNo: models.PaperDSC3, Rank: 1},
				Preference{StudentID: int64(i), BatchID: 20, PaperNo: models.PaperDSC3, Rank: 2},
				Preference{StudentID: int64(i), BatchID: 30, PaperNo: models.PaperMDC, Rank: 1},
				Preference{StudentID: int64(i), BatchID: 31, PaperNo: models.PaperMDC, Rank: 2},
			)
		}
		return Input{
			Semester: 1,
			Students: students,
			Batches: []Batch{
				dscBatch(10, 1, 4), dscBatch(11, 2, 4),
				dscBatch(20, 1, 5), dscBatch(21, 2, 5),
				mdcBatch(30, 1, 5), mdcBatch(31, 2, 5),
			},
			Preferences: prefs,
			Settings: []Settings{
				{DepartmentID: 1, Strength: 20, DepartmentQuotaPct: 20, GeneralQuotaPct: 60, ScStQuotaPct: 20, OtherQuotaPct: 20},
			},
		}
	}

	first := run(t, build())
	second := run(t, build())

	assert.Equal(t, first.Allotments, second.Allotments)
	assert.Equal(t, first.Misses, second.Misses)
}
