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

// BatchRepository handles database operations for batches
type BatchRepository struct {
	db *pgxpool.Pool
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{db: db}
}

const batchColumns = `
	b.id, b.course_id, b.year, b.part, b.status, b.seats_taken,
	c.id, c.code, c.name, c.category, c.department_id, c.semester, c.seat_limit,
	d.id, d.name, d.is_major
`

const batchJoins = `
	FROM batches b
	JOIN courses c ON c.id = b.course_id
	JOIN departments d ON d.id = c.department_id
`

func scanBatch(row pgx.Row) (*models.Batch, error) {
	var batch models.Batch
	var course models.Course
	var department models.Department

	err := row.Scan(
		&batch.ID,
		&batch.CourseID,
		&batch.Year,
		&batch.Part,
		&batch.Status,
		&batch.SeatsTaken,
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
		return nil, err
	}

	course.Department = &department
	batch.Course = &course
	return &batch, nil
}

// Create creates a new batch
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	query := `
		INSERT INTO batches (course_id, year, part, status, seats_taken)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		batch.CourseID, batch.Year, batch.Part, batch.Status,
	).Scan(&batch.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrBatchAlreadyExists
		}
		return fmt.Errorf("error creating batch: %w", err)
	}

	return nil
}

// GetByID retrieves a batch with course and department populated
func (r *BatchRepository) GetByID(ctx context.Context, id int64) (*models.Batch, error) {
	query := `SELECT ` + batchColumns + batchJoins + ` WHERE b.id = $1`

	batch, err := scanBatch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}

	return batch, nil
}

// GetAll retrieves batches, optionally narrowed by a course filter
func (r *BatchRepository) GetAll(ctx context.Context, filter dto.CourseFilter) ([]*models.Batch, error) {
	query := `SELECT ` + batchColumns + batchJoins + `
		WHERE ($1 = '' OR c.category = $1)
		  AND ($2 = 0 OR c.department_id = $2)
		  AND ($3 = 0 OR c.semester = $3)
		ORDER BY b.id`

	rows, err := r.db.Query(ctx, query, filter.Category, filter.DepartmentID, filter.Semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBatches(rows)
}

// GetActiveForSemester retrieves the enrollable batches for a semester and
// academic year. Both preference capture and the allocation snapshot read
// from this set.
func (r *BatchRepository) GetActiveForSemester(ctx context.Context, semester int, year string) ([]*models.Batch, error) {
	query := `SELECT ` + batchColumns + batchJoins + `
		WHERE b.status = TRUE
		  AND b.year = $2
		  AND c.semester = $1
		ORDER BY b.id`

	rows, err := r.db.Query(ctx, query, semester, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBatches(rows)
}

func collectBatches(rows pgx.Rows) ([]*models.Batch, error) {
	var batches []*models.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}

// SetStatus toggles whether a batch accepts allotments
func (r *BatchRepository) SetStatus(ctx context.Context, id int64, status bool) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE batches SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating batch status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}

// AddSeatsTaken bumps the denormalized fill counter inside the allocation
// transaction. The update refuses to exceed the course seat limit; a zero
// row count therefore means the engine and the database disagree about
// capacity, which aborts the run.
func (r *BatchRepository) AddSeatsTaken(ctx context.Context, tx pgx.Tx, batchID int64, delta int) error {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE batches b
		SET seats_taken = b.seats_taken + $2
		FROM courses c
		WHERE b.id = $1
		  AND c.id = b.course_id
		  AND b.seats_taken + $2 >= 0
		  AND b.seats_taken + $2 <= c.seat_limit
	`, batchID, delta)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return fmt.Errorf("seat update for batch %d rejected by capacity check: %w", batchID, err)
		}
		return fmt.Errorf("error updating seats taken: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("seat update for batch %d would violate capacity bounds", batchID)
	}
	return nil
}

// ResetSeatsForSemester zeroes fill counters for a semester's batches of one
// academic year, used when clearing allotments for a re-run.
func (r *BatchRepository) ResetSeatsForSemester(ctx context.Context, tx pgx.Tx, semester int, year string) error {
	_, err := tx.Exec(ctx, `
		UPDATE batches b
		SET seats_taken = 0
		FROM courses c
		WHERE c.id = b.course_id
		  AND c.semester = $1
		  AND b.year = $2
	`, semester, year)
	if err != nil {
		return fmt.Errorf("error resetting seat counters: %w", err)
	}
	return nil
}

// Delete deletes a batch by ID
func (r *BatchRepository) Delete(ctx context.Context, id int64) error {
	var hasAllotments bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_allotments WHERE batch_id = $1)`, id).Scan(&hasAllotments)
	if err != nil {
		return fmt.Errorf("error checking batch allotments: %w", err)
	}
	if hasAllotments {
		return apperrors.NewConflictError("batch has allotments and cannot be deleted")
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting batch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}
