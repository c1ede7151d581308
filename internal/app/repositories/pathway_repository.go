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

// PathwayRepository handles database operations for pathways
type PathwayRepository struct {
	db *pgxpool.Pool
}

// NewPathwayRepository creates a new pathway repository
func NewPathwayRepository(db *pgxpool.Pool) *PathwayRepository {
	return &PathwayRepository{db: db}
}

// Create creates a new pathway
func (r *PathwayRepository) Create(ctx context.Context, pathway *models.Pathway) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO pathways (name) VALUES ($1) RETURNING id`,
		pathway.Name).Scan(&pathway.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating pathway: %w", err)
	}
	return nil
}

// GetByID retrieves a pathway by ID
func (r *PathwayRepository) GetByID(ctx context.Context, id int64) (*models.Pathway, error) {
	var pathway models.Pathway
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM pathways WHERE id = $1`, id).Scan(&pathway.ID, &pathway.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPathwayNotFound
		}
		return nil, fmt.Errorf("error retrieving pathway: %w", err)
	}
	return &pathway, nil
}

// GetByName retrieves a pathway by its exact name
func (r *PathwayRepository) GetByName(ctx context.Context, name string) (*models.Pathway, error) {
	var pathway models.Pathway
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM pathways WHERE name = $1`, name).Scan(&pathway.ID, &pathway.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPathwayNotFound
		}
		return nil, fmt.Errorf("error retrieving pathway: %w", err)
	}
	return &pathway, nil
}

// GetAll retrieves all pathways
func (r *PathwayRepository) GetAll(ctx context.Context) ([]*models.Pathway, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM pathways ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pathways []*models.Pathway
	for rows.Next() {
		var pathway models.Pathway
		if err := rows.Scan(&pathway.ID, &pathway.Name); err != nil {
			return nil, err
		}
		pathways = append(pathways, &pathway)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pathways, nil
}
