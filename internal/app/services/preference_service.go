package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/logger"
)

// maxSecondaryChoices bounds the ranked list for the secondary DSC slots.
const maxSecondaryChoices = 3

// eligibility captures the per-student inputs the slot rules consume.
// The two allotted-department fields are only set for Double Major students
// in semester 2, where the second major chosen in semester 1 locks the
// department filters for the DSC slots.
type eligibility struct {
	HomeDepartmentID int64
	Pathway          string
	Semester         int
	// Department of the semester-1 slot-1 allotment.
	PrimaryAllotDeptID int64
	// Department of the semester-1 slot-3 allotment.
	SecondaryAllotDeptID int64
}

func (e eligibility) doubleMajorSecondSemester() bool {
	return e.Pathway == models.PathwayDoubleMajor && e.Semester == 2
}

// eligibleBatches applies the pathway rules for one paper slot. Batches are
// expected to be the active set for the student's semester; ordering is
// preserved.
func eligibleBatches(e eligibility, paperNo int, batches []*models.Batch) []*models.Batch {
	var out []*models.Batch
	for _, b := range batches {
		if b.Course == nil {
			continue
		}
		if batchEligible(e, paperNo, b.Course.Category, b.Course.DepartmentID) {
			out = append(out, b)
		}
	}
	return out
}

func batchEligible(e eligibility, paperNo int, category models.CourseCategory, departmentID int64) bool {
	if paperNo == models.PaperMDC {
		if category != models.CourseMDC || departmentID == e.HomeDepartmentID {
			return false
		}
		// Second-semester Double Major students also study their second
		// major's department; its MDC offerings are off limits too.
		if e.doubleMajorSecondSemester() && departmentID == e.SecondaryAllotDeptID {
			return false
		}
		return true
	}
	if category != models.CourseDSC {
		return false
	}

	if e.doubleMajorSecondSemester() {
		// Slots 1 and 2 continue the second major locked in by the
		// semester-1 slot-3 allotment; slot 3 follows the slot-1 department.
		switch paperNo {
		case models.PaperDSC1, models.PaperDSC2:
			return departmentID == e.SecondaryAllotDeptID
		default:
			return departmentID == e.PrimaryAllotDeptID
		}
	}

	switch paperNo {
	case models.PaperDSC1:
		return departmentID == e.HomeDepartmentID
	case models.PaperDSC2:
		if e.Pathway == models.PathwayDoubleMajor {
			return departmentID == e.HomeDepartmentID
		}
		return departmentID != e.HomeDepartmentID
	default:
		return departmentID != e.HomeDepartmentID
	}
}

// slotChoiceCount is the number of ranked choices a slot requires given the
// size of its eligible set. Slot 1 takes a single choice, the secondary
// slots take up to three, and the MDC slot ranks every eligible batch.
// Double Major slot 2 draws from the same department pool as slot 1, so it
// ranks the whole set minus the batch slot 1 consumes.
func slotChoiceCount(e eligibility, paperNo, available int) int {
	switch paperNo {
	case models.PaperDSC1:
		return min(1, available)
	case models.PaperDSC2:
		if e.Pathway == models.PathwayDoubleMajor {
			return max(available-1, 0)
		}
		return min(maxSecondaryChoices, available)
	case models.PaperDSC3:
		return min(maxSecondaryChoices, available)
	default:
		return available
	}
}

// paperLabel is the display name of a slot for the student's semester.
func paperLabel(semester, paperNo int) string {
	if paperNo == models.PaperMDC {
		return "MDC"
	}
	if semester == 2 {
		return fmt.Sprintf("DSC %d", paperNo+3)
	}
	return fmt.Sprintf("DSC %d", paperNo)
}

// PreferenceService handles eligibility rules, preference forms and ranked
// submissions
type PreferenceService struct {
	studentRepo    *repositories.StudentRepository
	batchRepo      *repositories.BatchRepository
	preferenceRepo *repositories.PreferenceRepository
	allotmentRepo  *repositories.AllotmentRepository
	academicYear   string
}

// NewPreferenceService creates a new preference service instance
func NewPreferenceService(
	studentRepo *repositories.StudentRepository,
	batchRepo *repositories.BatchRepository,
	preferenceRepo *repositories.PreferenceRepository,
	allotmentRepo *repositories.AllotmentRepository,
	academicYear string,
) *PreferenceService {
	return &PreferenceService{
		studentRepo:    studentRepo,
		batchRepo:      batchRepo,
		preferenceRepo: preferenceRepo,
		allotmentRepo:  allotmentRepo,
		academicYear:   academicYear,
	}
}

// BuildForm computes the candidate batches and required choice counts for
// every paper slot of the student's current semester.
func (s *PreferenceService) BuildForm(ctx context.Context, studentID int64) (*dto.PreferenceFormResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	e, batches, err := s.loadEligibility(ctx, student)
	if err != nil {
		return nil, err
	}
	submitted, err := s.preferenceRepo.HasSubmission(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking submission: %w", err)
	}

	form := &dto.PreferenceFormResponse{
		Semester:  student.CurrentSem,
		Submitted: submitted,
	}
	if student.Pathway != nil {
		form.Pathway = student.Pathway.Name
	}
	for _, paperNo := range models.PaperNumbers {
		eligible := eligibleBatches(e, paperNo, batches)
		options := make([]dto.BatchOption, 0, len(eligible))
		for _, b := range eligible {
			options = append(options, dto.BatchOption{
				BatchID:        b.ID,
				CourseCode:     b.Course.Code,
				CourseName:     b.Course.Name,
				DepartmentName: b.Course.Department.Name,
			})
		}
		form.Papers = append(form.Papers, dto.PaperOptions{
			PaperNo: paperNo,
			Label:   paperLabel(student.CurrentSem, paperNo),
			Choices: slotChoiceCount(e, paperNo, len(eligible)),
			Options: options,
		})
	}
	return form, nil
}

// Submit validates a ranked submission against the eligibility rules and
// stores it. A student submits once per capture window.
func (s *PreferenceService) Submit(ctx context.Context, studentID int64, req *dto.SubmitPreferencesRequest) error {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	submitted, err := s.preferenceRepo.HasSubmission(ctx, student.ID)
	if err != nil {
		return fmt.Errorf("error checking submission: %w", err)
	}
	if submitted {
		return apperrors.ErrPreferencesAlreadySubmitted
	}

	e, batches, err := s.loadEligibility(ctx, student)
	if err != nil {
		return err
	}

	selections := make(map[int]dto.PaperSelection, models.NumPapers)
	for _, sel := range req.Selections {
		if _, dup := selections[sel.PaperNo]; dup {
			return apperrors.NewValidationError(fmt.Sprintf("paper %d selected twice", sel.PaperNo))
		}
		selections[sel.PaperNo] = sel
	}

	usedBatches := make(map[int64]int, models.NumPapers)
	var preferences []*models.CoursePreference
	for _, paperNo := range models.PaperNumbers {
		sel, ok := selections[paperNo]
		if !ok {
			return apperrors.NewValidationError(fmt.Sprintf("paper %d is missing from the submission", paperNo))
		}

		eligible := eligibleBatches(e, paperNo, batches)
		if len(eligible) == 0 {
			return apperrors.ErrNoEligibleBatches
		}
		eligibleIDs := make(map[int64]bool, len(eligible))
		for _, b := range eligible {
			eligibleIDs[b.ID] = true
		}

		required := slotChoiceCount(e, paperNo, len(eligible))
		if len(sel.BatchIDs) != required {
			return apperrors.NewValidationError(
				fmt.Sprintf("paper %d requires exactly %d ranked choices", paperNo, required))
		}

		for rank, batchID := range sel.BatchIDs {
			if !eligibleIDs[batchID] {
				return apperrors.NewValidationError(
					fmt.Sprintf("batch %d is not eligible for paper %d", batchID, paperNo))
			}
			if other, used := usedBatches[batchID]; used {
				return apperrors.NewValidationError(
					fmt.Sprintf("batch %d appears under papers %d and %d", batchID, other, paperNo))
			}
			usedBatches[batchID] = paperNo
			preferences = append(preferences, &models.CoursePreference{
				StudentID:        student.ID,
				BatchID:          batchID,
				PreferenceNumber: rank + 1,
				PaperNo:          paperNo,
			})
		}
	}

	if err := s.preferenceRepo.CreateMany(ctx, preferences); err != nil {
		return fmt.Errorf("error storing preferences: %w", err)
	}
	return nil
}

// GetByStudent returns a student's stored preferences
func (s *PreferenceService) GetByStudent(ctx context.Context, studentID int64) ([]*models.CoursePreference, error) {
	return s.preferenceRepo.GetByStudent(ctx, studentID)
}

// AdmissionNumbersWithoutSubmission lists the students of a semester who
// have not submitted preferences yet.
func (s *PreferenceService) AdmissionNumbersWithoutSubmission(ctx context.Context, semester int) ([]string, error) {
	if semester < 1 || semester > 2 {
		return nil, apperrors.NewValidationError("semester must be 1 or 2")
	}
	return s.preferenceRepo.AdmissionNumbersWithoutSubmission(ctx, semester)
}

// GenerateDummy fills randomized valid preferences for every student of the
// semester who has none, and returns how many students were filled.
// Development tooling; the route is gated to non-production mode.
func (s *PreferenceService) GenerateDummy(ctx context.Context, semester int) (int, error) {
	students, err := s.studentRepo.GetBySemester(ctx, semester)
	if err != nil {
		return 0, err
	}

	filled := 0
	for _, student := range students {
		submitted, err := s.preferenceRepo.HasSubmission(ctx, student.ID)
		if err != nil {
			return filled, fmt.Errorf("error checking submission: %w", err)
		}
		if submitted {
			continue
		}

		e, batches, err := s.loadEligibility(ctx, student)
		if err != nil {
			return filled, err
		}

		var preferences []*models.CoursePreference
		used := make(map[int64]bool, models.NumPapers)
		complete := true
		for _, paperNo := range models.PaperNumbers {
			eligible := eligibleBatches(e, paperNo, batches)
			var available []*models.Batch
			for _, b := range eligible {
				if !used[b.ID] {
					available = append(available, b)
				}
			}
			required := slotChoiceCount(e, paperNo, len(eligible))
			if len(available) < required || required == 0 {
				complete = false
				break
			}
			rand.Shuffle(len(available), func(i, j int) {
				available[i], available[j] = available[j], available[i]
			})
			for rank, b := range available[:required] {
				used[b.ID] = true
				preferences = append(preferences, &models.CoursePreference{
					StudentID:        student.ID,
					BatchID:          b.ID,
					PreferenceNumber: rank + 1,
					PaperNo:          paperNo,
				})
			}
		}
		if !complete {
			logger.Warn().
				Str("admission_number", student.AdmissionNumber).
				Msg("Skipping dummy preferences, not enough eligible batches")
			continue
		}

		if err := s.preferenceRepo.CreateMany(ctx, preferences); err != nil {
			return filled, fmt.Errorf("error storing dummy preferences: %w", err)
		}
		filled++
	}
	return filled, nil
}

// loadEligibility assembles the slot-rule inputs and the active batch set
// for the student's semester.
func (s *PreferenceService) loadEligibility(ctx context.Context, student *models.Student) (eligibility, []*models.Batch, error) {
	e := eligibility{
		HomeDepartmentID: student.DepartmentID,
		Semester:         student.CurrentSem,
	}
	if student.Pathway != nil {
		e.Pathway = student.Pathway.Name
	}

	if e.doubleMajorSecondSemester() {
		allotments, err := s.allotmentRepo.GetByStudent(ctx, student.ID)
		if err != nil {
			return e, nil, fmt.Errorf("error loading first-semester allotments: %w", err)
		}
		for _, a := range allotments {
			if a.Batch == nil || a.Batch.Course == nil || a.Batch.Course.Semester != 1 {
				continue
			}
			switch a.PaperNo {
			case models.PaperDSC1:
				e.PrimaryAllotDeptID = a.Batch.Course.DepartmentID
			case models.PaperDSC3:
				e.SecondaryAllotDeptID = a.Batch.Course.DepartmentID
			}
		}
	}

	batches, err := s.batchRepo.GetActiveForSemester(ctx, student.CurrentSem, s.academicYear)
	if err != nil {
		return e, nil, fmt.Errorf("error loading batches: %w", err)
	}
	return e, batches, nil
}
