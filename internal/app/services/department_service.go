package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
)

// DepartmentService handles department reference data
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if strings.TrimSpace(department.Name) == "" {
		return apperrors.NewValidationError("department name cannot be empty")
	}
	department.Name = strings.TrimSpace(department.Name)

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetDepartmentByID retrieves a department by ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid department ID")
	}
	return s.departmentRepo.GetByID(ctx, id)
}

// GetAllDepartments retrieves all departments
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx)
}

// GetMajorDepartments retrieves the departments participating in
// quota-managed MDC allocation
func (s *DepartmentService) GetMajorDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.GetMajors(ctx)
}

// UpdateDepartment updates a department's name and major flag
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if strings.TrimSpace(department.Name) == "" {
		return apperrors.NewValidationError("department name cannot be empty")
	}
	department.Name = strings.TrimSpace(department.Name)

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return fmt.Errorf("error updating department: %w", err)
	}
	return nil
}

// DeleteDepartment removes a department with no students or courses
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid department ID")
	}
	return s.departmentRepo.Delete(ctx, id)
}
