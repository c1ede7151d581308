package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
)

// CourseService handles the course catalogue
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, departmentRepo *repositories.DepartmentRepository) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateCourse validates and creates a course
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	category := models.CourseCategory(strings.ToUpper(strings.TrimSpace(req.Category)))
	if !category.Valid() {
		return nil, apperrors.NewValidationError("category must be DSC or MDC")
	}
	if req.Semester < 1 || req.Semester > 2 {
		return nil, apperrors.NewValidationError("semester must be 1 or 2")
	}
	if req.SeatLimit < 1 {
		return nil, apperrors.NewValidationError("seat limit must be positive")
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, apperrors.ErrDepartmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error checking department: %w", err)
	}

	course := &models.Course{
		Code:         strings.TrimSpace(req.Code),
		Name:         strings.TrimSpace(req.Name),
		Category:     category,
		DepartmentID: req.DepartmentID,
		Semester:     req.Semester,
		SeatLimit:    req.SeatLimit,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid course ID")
	}
	return s.courseRepo.GetByID(ctx, id)
}

// GetCourses retrieves courses matching the filter
func (s *CourseService) GetCourses(ctx context.Context, filter dto.CourseFilter) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx, filter)
}

// UpdateCourse applies the mutable fields of the request to a course
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.NewValidationError("course name cannot be empty")
		}
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.SeatLimit != nil {
		if *req.SeatLimit < 1 {
			return nil, apperrors.NewValidationError("seat limit must be positive")
		}
		course.SeatLimit = *req.SeatLimit
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return course, nil
}

// DeleteCourse removes a course with no batches
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid course ID")
	}
	return s.courseRepo.Delete(ctx, id)
}
