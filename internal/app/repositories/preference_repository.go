package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
)

// PreferenceRepository handles database operations for course preferences
type PreferenceRepository struct {
	db *pgxpool.Pool
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// CreateMany inserts a student's full ranked submission in one batch
func (r *PreferenceRepository) CreateMany(ctx context.Context, preferences []*models.CoursePreference) error {
	if len(preferences) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(preferences))
	for _, p := range preferences {
		rows = append(rows, []interface{}{p.StudentID, p.BatchID, p.PreferenceNumber, p.PaperNo})
	}

	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"course_preferences"},
		[]string{"student_id", "batch_id", "preference_number", "paper_no"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("error inserting preferences: %w", err)
	}

	return nil
}

// HasSubmission checks whether a student already has preference rows
func (r *PreferenceRepository) HasSubmission(ctx context.Context, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_preferences WHERE student_id = $1)`,
		studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking preference submission: %w", err)
	}
	return exists, nil
}

// GetByStudent retrieves a student's preferences ordered by paper and rank
func (r *PreferenceRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.CoursePreference, error) {
	query := `
		SELECT id, student_id, batch_id, preference_number, paper_no
		FROM course_preferences
		WHERE student_id = $1
		ORDER BY paper_no, preference_number
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var preferences []*models.CoursePreference
	for rows.Next() {
		var p models.CoursePreference
		if err := rows.Scan(&p.ID, &p.StudentID, &p.BatchID, &p.PreferenceNumber, &p.PaperNo); err != nil {
			return nil, err
		}
		preferences = append(preferences, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return preferences, nil
}

// GetForSemester retrieves every preference row of a semester's students,
// ordered deterministically for the allocation snapshot
func (r *PreferenceRepository) GetForSemester(ctx context.Context, semester int) ([]*models.CoursePreference, error) {
	query := `
		SELECT cp.id, cp.student_id, cp.batch_id, cp.preference_number, cp.paper_no
		FROM course_preferences cp
		JOIN students s ON s.id = cp.student_id
		WHERE s.current_sem = $1
		ORDER BY cp.student_id, cp.paper_no, cp.preference_number
	`

	rows, err := r.db.Query(ctx, query, semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var preferences []*models.CoursePreference
	for rows.Next() {
		var p models.CoursePreference
		if err := rows.Scan(&p.ID, &p.StudentID, &p.BatchID, &p.PreferenceNumber, &p.PaperNo); err != nil {
			return nil, err
		}
		preferences = append(preferences, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return preferences, nil
}

// AdmissionNumbersWithoutSubmission lists students of a semester who have no
// preference rows, blocking an allocation run
func (r *PreferenceRepository) AdmissionNumbersWithoutSubmission(ctx context.Context, semester int) ([]string, error) {
	query := `
		SELECT s.admission_number
		FROM students s
		WHERE s.current_sem = $1
		  AND NOT EXISTS (SELECT 1 FROM course_preferences cp WHERE cp.student_id = s.id)
		ORDER BY s.admission_number
	`

	rows, err := r.db.Query(ctx, query, semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admissionNumbers []string
	for rows.Next() {
		var admissionNumber string
		if err := rows.Scan(&admissionNumber); err != nil {
			return nil, err
		}
		admissionNumbers = append(admissionNumbers, admissionNumber)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return admissionNumbers, nil
}

// DeleteForSemester removes a semester's consumed preference rows inside the
// allocation transaction
func (r *PreferenceRepository) DeleteForSemester(ctx context.Context, tx pgx.Tx, semester int) (int64, error) {
	cmdTag, err := tx.Exec(ctx, `
		DELETE FROM course_preferences cp
		USING students s
		WHERE s.id = cp.student_id
		  AND s.current_sem = $1
	`, semester)
	if err != nil {
		return 0, fmt.Errorf("error deleting preferences: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
