package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/dberrors"
)

// SettingsRepository handles database operations for allocation settings
type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create creates settings for a department
func (r *SettingsRepository) Create(ctx context.Context, settings *models.AllocationSettings) error {
	query := `
		INSERT INTO allocation_settings (department_id, strength,
			department_quota_percentage, general_quota_percentage,
			sc_st_quota_percentage, other_quota_percentage)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		settings.DepartmentID, settings.Strength,
		settings.DepartmentQuotaPercentage, settings.GeneralQuotaPercentage,
		settings.ScStQuotaPercentage, settings.OtherQuotaPercentage,
	).Scan(&settings.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSettingsAlreadyExist
		}
		return fmt.Errorf("error creating allocation settings: %w", err)
	}

	return nil
}

// Update updates a department's settings
func (r *SettingsRepository) Update(ctx context.Context, settings *models.AllocationSettings) error {
	query := `
		UPDATE allocation_settings
		SET strength = $1, department_quota_percentage = $2,
			general_quota_percentage = $3, sc_st_quota_percentage = $4,
			other_quota_percentage = $5
		WHERE department_id = $6
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		settings.Strength, settings.DepartmentQuotaPercentage,
		settings.GeneralQuotaPercentage, settings.ScStQuotaPercentage,
		settings.OtherQuotaPercentage, settings.DepartmentID,
	).Scan(&settings.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSettingsNotFound
		}
		return fmt.Errorf("error updating allocation settings: %w", err)
	}

	return nil
}

// GetByDepartment retrieves a department's settings
func (r *SettingsRepository) GetByDepartment(ctx context.Context, departmentID int64) (*models.AllocationSettings, error) {
	query := `
		SELECT id, department_id, strength, department_quota_percentage,
		       general_quota_percentage, sc_st_quota_percentage, other_quota_percentage
		FROM allocation_settings
		WHERE department_id = $1
	`

	var settings models.AllocationSettings
	err := r.db.QueryRow(ctx, query, departmentID).Scan(
		&settings.ID,
		&settings.DepartmentID,
		&settings.Strength,
		&settings.DepartmentQuotaPercentage,
		&settings.GeneralQuotaPercentage,
		&settings.ScStQuotaPercentage,
		&settings.OtherQuotaPercentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("error retrieving allocation settings: %w", err)
	}

	return &settings, nil
}

// GetAll retrieves settings for every department with the department
// populated, ordered by department ID for deterministic engine input
func (r *SettingsRepository) GetAll(ctx context.Context) ([]*models.AllocationSettings, error) {
	query := `
		SELECT s.id, s.department_id, s.strength, s.department_quota_percentage,
		       s.general_quota_percentage, s.sc_st_quota_percentage, s.other_quota_percentage,
		       d.id, d.name, d.is_major
		FROM allocation_settings s
		JOIN departments d ON d.id = s.department_id
		ORDER BY s.department_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allSettings []*models.AllocationSettings
	for rows.Next() {
		var settings models.AllocationSettings
		var department models.Department
		if err := rows.Scan(
			&settings.ID,
			&settings.DepartmentID,
			&settings.Strength,
			&settings.DepartmentQuotaPercentage,
			&settings.GeneralQuotaPercentage,
			&settings.ScStQuotaPercentage,
			&settings.OtherQuotaPercentage,
			&department.ID,
			&department.Name,
			&department.IsMajor,
		); err != nil {
			return nil, err
		}
		settings.Department = &department
		allSettings = append(allSettings, &settings)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return allSettings, nil
}
