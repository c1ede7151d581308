package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// BatchService handles batch instantiation and status gating
type BatchService struct {
	batchRepo  *repositories.BatchRepository
	courseRepo *repositories.CourseRepository
}

// NewBatchService creates a new batch service instance
func NewBatchService(batchRepo *repositories.BatchRepository, courseRepo *repositories.CourseRepository) *BatchService {
	return &BatchService{
		batchRepo:  batchRepo,
		courseRepo: courseRepo,
	}
}

// CreateBatch instantiates a course as an enrollable batch. New batches start
// active with zero seats taken.
func (s *BatchService) CreateBatch(ctx context.Context, req *dto.CreateBatchRequest) (*models.Batch, error) {
	if !academicYearPattern.MatchString(req.Year) {
		return nil, apperrors.NewValidationError("year must look like 2025-26")
	}
	if req.Part < 1 || req.Part > 2 {
		return nil, apperrors.NewValidationError("part must be 1 or 2")
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	batch := &models.Batch{
		CourseID: course.ID,
		Year:     req.Year,
		Part:     req.Part,
		Status:   true,
	}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("error creating batch: %w", err)
	}
	batch.Course = course
	return batch, nil
}

// GetBatchByID retrieves a batch by ID
func (s *BatchService) GetBatchByID(ctx context.Context, id int64) (*models.Batch, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid batch ID")
	}
	return s.batchRepo.GetByID(ctx, id)
}

// GetBatches retrieves batches matching the filter
func (s *BatchService) GetBatches(ctx context.Context, filter dto.CourseFilter) ([]*models.Batch, error) {
	return s.batchRepo.GetAll(ctx, filter)
}

// SetBatchStatus toggles whether a batch accepts allotments
func (s *BatchService) SetBatchStatus(ctx context.Context, id int64, status bool) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid batch ID")
	}
	return s.batchRepo.SetStatus(ctx, id, status)
}

// DeleteBatch removes a batch with no allotments
func (s *BatchService) DeleteBatch(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid batch ID")
	}
	return s.batchRepo.Delete(ctx, id)
}
