package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
)

// AllotmentRepository handles database operations for course allotments
type AllotmentRepository struct {
	db *pgxpool.Pool
}

// NewAllotmentRepository creates a new allotment repository
func NewAllotmentRepository(db *pgxpool.Pool) *AllotmentRepository {
	return &AllotmentRepository{db: db}
}

// BulkInsert writes the engine's output inside the allocation transaction
func (r *AllotmentRepository) BulkInsert(ctx context.Context, tx pgx.Tx, allotments []*models.CourseAllotment) error {
	if len(allotments) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(allotments))
	for _, a := range allotments {
		rows = append(rows, []interface{}{a.StudentID, a.BatchID, a.PaperNo})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"course_allotments"},
		[]string{"student_id", "batch_id", "paper_no"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("error inserting allotments: %w", err)
	}

	return nil
}

// ExistsForSemester answers the double-run guard: does any allotment already
// exist for this semester and academic year?
func (r *AllotmentRepository) ExistsForSemester(ctx context.Context, semester int, year string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM course_allotments ca
			JOIN batches b ON b.id = ca.batch_id
			JOIN courses c ON c.id = b.course_id
			WHERE c.semester = $1 AND b.year = $2
		)
	`, semester, year).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking existing allotments: %w", err)
	}
	return exists, nil
}

// GetByStudent retrieves a student's allotments with batch, course and
// department populated, ordered by paper number
func (r *AllotmentRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.CourseAllotment, error) {
	query := `
		SELECT ca.id, ca.student_id, ca.batch_id, ca.paper_no, ca.created_at,
		       b.id, b.course_id, b.year, b.part, b.status, b.seats_taken,
		       c.id, c.code, c.name, c.category, c.department_id, c.semester, c.seat_limit,
		       d.id, d.name, d.is_major
		FROM course_allotments ca
		JOIN batches b ON b.id = ca.batch_id
		JOIN courses c ON c.id = b.course_id
		JOIN departments d ON d.id = c.department_id
		WHERE ca.student_id = $1
		ORDER BY ca.paper_no
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAllotments(rows)
}

// GetForSemester retrieves every allotment of a semester and academic year
// with relations populated, ordered by student and paper
func (r *AllotmentRepository) GetForSemester(ctx context.Context, semester int, year string) ([]*models.CourseAllotment, error) {
	query := `
		SELECT ca.id, ca.student_id, ca.batch_id, ca.paper_no, ca.created_at,
		       b.id, b.course_id, b.year, b.part, b.status, b.seats_taken,
		       c.id, c.code, c.name, c.category, c.department_id, c.semester, c.seat_limit,
		       d.id, d.name, d.is_major
		FROM course_allotments ca
		JOIN batches b ON b.id = ca.batch_id
		JOIN courses c ON c.id = b.course_id
		JOIN departments d ON d.id = c.department_id
		WHERE c.semester = $1 AND b.year = $2
		ORDER BY ca.student_id, ca.paper_no
	`

	rows, err := r.db.Query(ctx, query, semester, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAllotments(rows)
}

func collectAllotments(rows pgx.Rows) ([]*models.CourseAllotment, error) {
	var allotments []*models.CourseAllotment
	for rows.Next() {
		var a models.CourseAllotment
		var batch models.Batch
		var course models.Course
		var department models.Department

		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.BatchID, &a.PaperNo, &a.CreatedAt,
			&batch.ID, &batch.CourseID, &batch.Year, &batch.Part, &batch.Status, &batch.SeatsTaken,
			&course.ID, &course.Code, &course.Name, &course.Category,
			&course.DepartmentID, &course.Semester, &course.SeatLimit,
			&department.ID, &department.Name, &department.IsMajor,
		); err != nil {
			return nil, err
		}

		course.Department = &department
		batch.Course = &course
		a.Batch = &batch
		allotments = append(allotments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return allotments, nil
}

// DeleteForSemester clears a semester's allotments inside a transaction,
// permitting a fresh run
func (r *AllotmentRepository) DeleteForSemester(ctx context.Context, tx pgx.Tx, semester int, year string) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `
		DELETE FROM course_allotments ca
		USING batches b, courses c
		WHERE b.id = ca.batch_id
		  AND c.id = b.course_id
		  AND c.semester = $1
		  AND b.year = $2
	`, semester, year)
	if err != nil {
		return 0, fmt.Errorf("error deleting allotments: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
