package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
)

// SettingsService handles per-department allocation quota configuration
type SettingsService struct {
	settingsRepo   *repositories.SettingsRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewSettingsService creates a new settings service instance
func NewSettingsService(settingsRepo *repositories.SettingsRepository, departmentRepo *repositories.DepartmentRepository) *SettingsService {
	return &SettingsService{
		settingsRepo:   settingsRepo,
		departmentRepo: departmentRepo,
	}
}

// SaveSettings creates or updates a department's quota configuration. The
// department must be flagged as a major and the three category percentages
// must sum to 100.
func (s *SettingsService) SaveSettings(ctx context.Context, req *dto.SaveAllocationSettingsRequest) (*models.AllocationSettings, error) {
	if err := validateSettingsRequest(req); err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !department.IsMajor {
		return nil, apperrors.ErrDepartmentNotMajor
	}

	settings := &models.AllocationSettings{
		DepartmentID:              req.DepartmentID,
		Strength:                  req.Strength,
		DepartmentQuotaPercentage: req.DepartmentQuotaPercentage,
		GeneralQuotaPercentage:    req.GeneralQuotaPercentage,
		ScStQuotaPercentage:       req.ScStQuotaPercentage,
		OtherQuotaPercentage:      req.OtherQuotaPercentage,
	}

	existing, err := s.settingsRepo.GetByDepartment(ctx, req.DepartmentID)
	if err != nil && !errors.Is(err, apperrors.ErrSettingsNotFound) {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	if existing != nil {
		settings.ID = existing.ID
		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			return nil, fmt.Errorf("error updating settings: %w", err)
		}
	} else {
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, fmt.Errorf("error creating settings: %w", err)
		}
	}

	settings.Department = department
	return settings, nil
}

// GetSettings retrieves every department's quota configuration
func (s *SettingsService) GetSettings(ctx context.Context) ([]*models.AllocationSettings, error) {
	return s.settingsRepo.GetAll(ctx)
}

// GetSettingsByDepartment retrieves one department's quota configuration
func (s *SettingsService) GetSettingsByDepartment(ctx context.Context, departmentID int64) (*models.AllocationSettings, error) {
	if departmentID <= 0 {
		return nil, apperrors.NewValidationError("invalid department ID")
	}
	return s.settingsRepo.GetByDepartment(ctx, departmentID)
}

func validateSettingsRequest(req *dto.SaveAllocationSettingsRequest) error {
	if req.Strength < 1 {
		return apperrors.NewValidationError("strength must be positive")
	}
	percentages := []float64{
		req.DepartmentQuotaPercentage,
		req.GeneralQuotaPercentage,
		req.ScStQuotaPercentage,
		req.OtherQuotaPercentage,
	}
	for _, p := range percentages {
		if p < 0 || p > 100 {
			return apperrors.NewValidationError("percentages must be between 0 and 100")
		}
	}
	sum := req.GeneralQuotaPercentage + req.ScStQuotaPercentage + req.OtherQuotaPercentage
	if math.Abs(sum-100) > 1e-9 {
		return apperrors.ErrInvalidQuotaPercentage
	}
	return nil
}
