package allocation

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
)

// Engine runs the multi-pass allotment over one snapshot. A fresh Engine
// is built per run; it is not safe for concurrent use.
type Engine struct {
	input  Input
	logger zerolog.Logger

	ledger  *seatLedger
	batches map[int64]Batch
	// prefs holds each student's ranked choices per paper, sorted by rank.
	prefs map[int64]map[int][]Preference
	// heldBatches and filledSlots enforce the cross-slot and per-slot
	// uniqueness invariants while passes run.
	heldBatches map[int64]map[int64]bool
	filledSlots map[int64]map[int]bool

	result Result
}

// NewEngine prepares an engine for a single run over the snapshot.
func NewEngine(input Input, logger zerolog.Logger) *Engine {
	e := &Engine{
		input:       input,
		logger:      logger,
		ledger:      newSeatLedger(input.Batches),
		batches:     make(map[int64]Batch, len(input.Batches)),
		prefs:       make(map[int64]map[int][]Preference, len(input.Students)),
		heldBatches: make(map[int64]map[int64]bool, len(input.Students)),
		filledSlots: make(map[int64]map[int]bool, len(input.Students)),
	}
	for _, b := range input.Batches {
		e.batches[b.ID] = b
	}
	for _, p := range input.Preferences {
		byPaper, ok := e.prefs[p.StudentID]
		if !ok {
			byPaper = make(map[int][]Preference, models.NumPapers)
			e.prefs[p.StudentID] = byPaper
		}
		byPaper[p.PaperNo] = append(byPaper[p.PaperNo], p)
	}
	for _, byPaper := range e.prefs {
		for paperNo := range byPaper {
			ranked := byPaper[paperNo]
			sort.Slice(ranked, func(i, j int) bool { return ranked[i].Rank < ranked[j].Rank })
		}
	}
	return e
}

// Run executes the three passes in order and returns the complete result.
// Per-student misses are recorded and logged, never raised.
func (e *Engine) Run() Result {
	e.runPrimaryPass()
	e.runSecondaryPass()
	e.runMultidisciplinaryPass()
	return e.result
}

// runPrimaryPass allots paper 1 for every student in admission-number order.
func (e *Engine) runPrimaryPass() {
	students := make([]Student, len(e.input.Students))
	copy(students, e.input.Students)
	sort.Slice(students, func(i, j int) bool {
		return students[i].AdmissionNumber < students[j].AdmissionNumber
	})
	for _, s := range students {
		if !e.allotFromPreferences(s, models.PaperDSC1) {
			e.recordMiss(s, models.PaperDSC1)
		}
	}
}

// runSecondaryPass allots papers 2 and 3, resolving paper 2 for the whole
// cohort before paper 3 begins.
func (e *Engine) runSecondaryPass() {
	students := e.meritOrdered(e.input.Students)
	for _, paperNo := range []int{models.PaperDSC2, models.PaperDSC3} {
		for _, s := range students {
			if !e.allotFromPreferences(s, paperNo) {
				e.recordMiss(s, paperNo)
			}
		}
	}
}

// runMultidisciplinaryPass allots paper 4 in two phases: quota-seeded
// intake per configured department, then a merit-ordered fallback that
// guarantees a seat whenever any MDC capacity remains.
func (e *Engine) runMultidisciplinaryPass() {
	e.runQuotaPhase()
	e.runFallbackPhase()
}

func (e *Engine) runQuotaPhase() {
	settings := make([]Settings, len(e.input.Settings))
	copy(settings, e.input.Settings)
	sort.Slice(settings, func(i, j int) bool {
		return settings[i].DepartmentID < settings[j].DepartmentID
	})

	for _, s := range settings {
		q := computeQuota(s)
		for _, g := range []quotaGroup{groupGeneral, groupScSt, groupOther} {
			for _, student := range e.quotaWindow(s.DepartmentID, g, q.forGroup(g)) {
				if e.hasSlot(student.ID, models.PaperMDC) {
					continue
				}
				e.allotFromPreferences(student, models.PaperMDC)
			}
		}
	}
}

// quotaWindow returns the department's own students in the reservation
// pool, merit-ordered and truncated to the pool's quota.
func (e *Engine) quotaWindow(departmentID int64, g quotaGroup, limit int) []Student {
	var pool []Student
	for _, s := range e.input.Students {
		if s.DepartmentID == departmentID && groupFor(s.Category) == g {
			pool = append(pool, s)
		}
	}
	pool = e.meritOrdered(pool)
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

func (e *Engine) runFallbackPhase() {
	for _, s := range e.meritOrdered(e.input.Students) {
		if e.hasSlot(s.ID, models.PaperMDC) {
			continue
		}
		if e.allotFromPreferences(s, models.PaperMDC) {
			continue
		}
		if batchID, ok := e.leastFilledMDCBatch(s.ID); ok {
			e.allot(s, batchID, models.PaperMDC)
			continue
		}
		e.recordMiss(s, models.PaperMDC)
	}
}

// leastFilledMDCBatch picks the active MDC batch with the most open seats
// that the student does not already hold, preferring the lower batch ID on
// equal fill.
func (e *Engine) leastFilledMDCBatch(studentID int64) (int64, bool) {
	var (
		bestID   int64
		bestLeft int
		found    bool
	)
	for _, b := range e.input.Batches {
		if b.Category != models.CourseMDC || !b.Active {
			continue
		}
		if e.heldBatches[studentID][b.ID] {
			continue
		}
		left := e.ledger.left(b.ID)
		if left <= 0 {
			continue
		}
		if !found || left > bestLeft || (left == bestLeft && b.ID < bestID) {
			bestID, bestLeft, found = b.ID, left, true
		}
	}
	return bestID, found
}

// allotFromPreferences walks the student's ranked choices for the paper and
// seats the first active batch with capacity. It reports whether a seat was
// taken.
func (e *Engine) allotFromPreferences(s Student, paperNo int) bool {
	if e.hasSlot(s.ID, paperNo) {
		return true
	}
	for _, p := range e.prefs[s.ID][paperNo] {
		batch, ok := e.batches[p.BatchID]
		if !ok || !batch.Active {
			continue
		}
		if e.heldBatches[s.ID][p.BatchID] {
			continue
		}
		if !e.ledger.hasSeat(p.BatchID) {
			continue
		}
		e.allot(s, p.BatchID, paperNo)
		return true
	}
	return false
}

func (e *Engine) allot(s Student, batchID int64, paperNo int) {
	e.ledger.take(batchID)
	if e.heldBatches[s.ID] == nil {
		e.heldBatches[s.ID] = make(map[int64]bool, models.NumPapers)
	}
	e.heldBatches[s.ID][batchID] = true
	if e.filledSlots[s.ID] == nil {
		e.filledSlots[s.ID] = make(map[int]bool, models.NumPapers)
	}
	e.filledSlots[s.ID][paperNo] = true
	e.result.Allotments = append(e.result.Allotments, Allotment{
		StudentID: s.ID,
		BatchID:   batchID,
		PaperNo:   paperNo,
	})
}

func (e *Engine) hasSlot(studentID int64, paperNo int) bool {
	return e.filledSlots[studentID][paperNo]
}

func (e *Engine) recordMiss(s Student, paperNo int) {
	e.logger.Warn().
		Str("admission_number", s.AdmissionNumber).
		Int("paper_no", paperNo).
		Int("semester", e.input.Semester).
		Msg("No batch could be allotted for paper")
	e.result.Misses = append(e.result.Misses, Miss{
		StudentID:       s.ID,
		AdmissionNumber: s.AdmissionNumber,
		PaperNo:         paperNo,
	})
}

// meritOrdered sorts students by decreasing academic merit for the
// snapshot's semester. Semester 2 orders by first-semester marks with
// missing marks last; semester 1 orders by normalized entrance marks.
// Admission number breaks ties so runs stay deterministic.
func (e *Engine) meritOrdered(students []Student) []Student {
	ordered := make([]Student, len(students))
	copy(ordered, students)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if e.input.Semester == 2 {
			switch {
			case a.FirstSemMarks == nil && b.FirstSemMarks == nil:
				return a.AdmissionNumber < b.AdmissionNumber
			case a.FirstSemMarks == nil:
				return false
			case b.FirstSemMarks == nil:
				return true
			case *a.FirstSemMarks != *b.FirstSemMarks:
				return *a.FirstSemMarks > *b.FirstSemMarks
			}
			return a.AdmissionNumber < b.AdmissionNumber
		}
		if a.NormalizedMarks != b.NormalizedMarks {
			return a.NormalizedMarks > b.NormalizedMarks
		}
		return a.AdmissionNumber < b.AdmissionNumber
	})
	return ordered
}
