package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/dberrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (code, name, category, department_id, semester, seat_limit)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		course.Code, course.Name, course.Category, course.DepartmentID,
		course.Semester, course.SeatLimit,
	).Scan(&course.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course with its department populated
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT c.id, c.code, c.name, c.category, c.department_id, c.semester, c.seat_limit,
		       d.id, d.name, d.is_major
		FROM courses c
		JOIN departments d ON d.id = c.department_id
		WHERE c.id = $1
	`

	var course models.Course
	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Code,
		&course.Name,
		&course.Category,
		&course.DepartmentID,
		&course.Semester,
		&course.SeatLimit,
		&department.ID,
		&department.Name,
		&department.IsMajor,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	course.Department = &department
	return &course, nil
}

// GetAll retrieves courses, optionally narrowed by a filter
func (r *CourseRepository) GetAll(ctx context.Context, filter dto.CourseFilter) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.code, c.name, c.category, c.department_id, c.semester, c.seat_limit,
		       d.id, d.name, d.is_major
		FROM courses c
		JOIN departments d ON d.id = c.department_id
		WHERE ($1 = '' OR c.category = $1)
		  AND ($2 = 0 OR c.department_id = $2)
		  AND ($3 = 0 OR c.semester = $3)
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, query, filter.Category, filter.DepartmentID, filter.Semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		var department models.Department
		if err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Name,
			&course.Category,
			&course.DepartmentID,
			&course.Semester,
			&course.SeatLimit,
			&department.ID,
			&department.Name,
			&department.IsMajor,
		); err != nil {
			return nil, err
		}
		course.Department = &department
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates a course's mutable fields
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE courses SET name = $1, seat_limit = $2 WHERE id = $3`,
		course.Name, course.SeatLimit, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	var hasBatches bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM batches WHERE course_id = $1)`, id).Scan(&hasBatches)
	if err != nil {
		return fmt.Errorf("error checking course batches: %w", err)
	}
	if hasBatches {
		return apperrors.NewConflictError("course has batches and cannot be deleted")
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
