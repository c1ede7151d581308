package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/allocation"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/db"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/logger"
)

// AllocationService drives the allocation run lifecycle: the double-run
// guard, the engine invocation and the all-or-nothing persistence of its
// output.
type AllocationService struct {
	db             *db.PostgresDB
	studentRepo    *repositories.StudentRepository
	batchRepo      *repositories.BatchRepository
	preferenceRepo *repositories.PreferenceRepository
	allotmentRepo  *repositories.AllotmentRepository
	settingsRepo   *repositories.SettingsRepository
	academicYear   string
	logger         zerolog.Logger
}

// NewAllocationService creates a new allocation service instance
func NewAllocationService(
	database *db.PostgresDB,
	studentRepo *repositories.StudentRepository,
	batchRepo *repositories.BatchRepository,
	preferenceRepo *repositories.PreferenceRepository,
	allotmentRepo *repositories.AllotmentRepository,
	settingsRepo *repositories.SettingsRepository,
	academicYear string,
	log zerolog.Logger,
) *AllocationService {
	return &AllocationService{
		db:             database,
		studentRepo:    studentRepo,
		batchRepo:      batchRepo,
		preferenceRepo: preferenceRepo,
		allotmentRepo:  allotmentRepo,
		settingsRepo:   settingsRepo,
		academicYear:   academicYear,
		logger:         log,
	}
}

// Status answers whether allotments already exist for the semester in the
// current academic year.
func (s *AllocationService) Status(ctx context.Context, semester int) (*dto.AllocationStatusResponse, error) {
	if semester < 1 || semester > 2 {
		return nil, apperrors.NewValidationError("semester must be 1 or 2")
	}
	exists, err := s.allotmentRepo.ExistsForSemester(ctx, semester, s.academicYear)
	if err != nil {
		return nil, err
	}
	return &dto.AllocationStatusResponse{
		Semester:      semester,
		AcademicYear:  s.academicYear,
		HasAllotments: exists,
	}, nil
}

// Run executes one allocation run for the semester. It refuses to start if
// allotments already exist or any student lacks a submission; on success it
// commits the allotments, the batch fill counters and the preference cleanup
// in a single transaction.
func (s *AllocationService) Run(ctx context.Context, semester int) (*dto.AllocationRunSummary, error) {
	if semester < 1 || semester > 2 {
		return nil, apperrors.NewValidationError("semester must be 1 or 2")
	}

	exists, err := s.allotmentRepo.ExistsForSemester(ctx, semester, s.academicYear)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAllotmentsExist
	}

	missing, err := s.preferenceRepo.AdmissionNumbersWithoutSubmission(ctx, semester)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrIncompletePreferences,
			fmt.Sprintf("%d students have not submitted preferences", len(missing))).
			WithDetails(map[string]interface{}{"admissionNumbers": missing})
	}

	input, err := s.loadSnapshot(ctx, semester)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("semester", semester).
		Str("academic_year", s.academicYear).
		Int("students", len(input.Students)).
		Int("batches", len(input.Batches)).
		Int("preferences", len(input.Preferences)).
		Msg("Starting allocation run")

	result := allocation.NewEngine(input, s.logger).Run()

	var preferencesUsed int64
	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		allotments := make([]*models.CourseAllotment, 0, len(result.Allotments))
		seatDeltas := make(map[int64]int)
		for _, a := range result.Allotments {
			allotments = append(allotments, &models.CourseAllotment{
				StudentID: a.StudentID,
				BatchID:   a.BatchID,
				PaperNo:   a.PaperNo,
			})
			seatDeltas[a.BatchID]++
		}

		if err := s.allotmentRepo.BulkInsert(ctx, tx, allotments); err != nil {
			return err
		}
		for batchID, delta := range seatDeltas {
			if err := s.batchRepo.AddSeatsTaken(ctx, tx, batchID, delta); err != nil {
				return err
			}
		}

		// Preferences are single-use input; a committed run consumes them.
		deleted, err := s.preferenceRepo.DeleteForSemester(ctx, tx, semester)
		if err != nil {
			return err
		}
		preferencesUsed = deleted
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("allocation run failed: %w", err)
	}

	s.logger.Info().
		Int("semester", semester).
		Int("allotments", len(result.Allotments)).
		Int("misses", len(result.Misses)).
		Msg("Allocation run committed")

	return &dto.AllocationRunSummary{
		Semester:        semester,
		StudentCount:    len(input.Students),
		AllotmentCount:  len(result.Allotments),
		MissCount:       len(result.Misses),
		PreferencesUsed: int(preferencesUsed),
	}, nil
}

// Clear wipes the semester's allotments and resets the batch fill counters,
// permitting a fresh run.
func (s *AllocationService) Clear(ctx context.Context, semester int) (int64, error) {
	if semester < 1 || semester > 2 {
		return 0, apperrors.NewValidationError("semester must be 1 or 2")
	}

	var deleted int64
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		n, err := s.allotmentRepo.DeleteForSemester(ctx, tx, semester, s.academicYear)
		if err != nil {
			return err
		}
		deleted = n
		return s.batchRepo.ResetSeatsForSemester(ctx, tx, semester, s.academicYear)
	})
	if err != nil {
		return 0, fmt.Errorf("clearing allotments failed: %w", err)
	}

	logger.Info().Int("semester", semester).Int64("deleted", deleted).Msg("Allotments cleared")
	return deleted, nil
}

// loadSnapshot assembles the engine input for one semester.
func (s *AllocationService) loadSnapshot(ctx context.Context, semester int) (allocation.Input, error) {
	input := allocation.Input{Semester: semester}

	students, err := s.studentRepo.GetBySemester(ctx, semester)
	if err != nil {
		return input, err
	}
	for _, st := range students {
		input.Students = append(input.Students, allocation.Student{
			ID:              st.ID,
			AdmissionNumber: st.AdmissionNumber,
			DepartmentID:    st.DepartmentID,
			Category:        st.Category,
			NormalizedMarks: st.NormalizedMarks,
			FirstSemMarks:   st.FirstSemMarks,
		})
	}

	batches, err := s.batchRepo.GetActiveForSemester(ctx, semester, s.academicYear)
	if err != nil {
		return input, err
	}
	for _, b := range batches {
		input.Batches = append(input.Batches, allocation.Batch{
			ID:           b.ID,
			DepartmentID: b.Course.DepartmentID,
			Category:     b.Course.Category,
			SeatLimit:    b.Course.SeatLimit,
			SeatsTaken:   b.SeatsTaken,
			Active:       b.Status,
		})
	}

	preferences, err := s.preferenceRepo.GetForSemester(ctx, semester)
	if err != nil {
		return input, err
	}
	for _, p := range preferences {
		input.Preferences = append(input.Preferences, allocation.Preference{
			StudentID: p.StudentID,
			BatchID:   p.BatchID,
			PaperNo:   p.PaperNo,
			Rank:      p.PreferenceNumber,
		})
	}

	settings, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		return input, err
	}
	for _, cfg := range settings {
		input.Settings = append(input.Settings, allocation.Settings{
			DepartmentID:       cfg.DepartmentID,
			Strength:           cfg.Strength,
			DepartmentQuotaPct: cfg.DepartmentQuotaPercentage,
			GeneralQuotaPct:    cfg.GeneralQuotaPercentage,
			ScStQuotaPct:       cfg.ScStQuotaPercentage,
			OtherQuotaPct:      cfg.OtherQuotaPercentage,
		})
	}

	return input, nil
}
