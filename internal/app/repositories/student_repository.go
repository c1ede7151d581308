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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `
	s.id, s.admission_number, s.name, s.dob, s.email, s.department_id,
	s.admission_category, s.pathway_id, s.current_sem, s.normalized_marks,
	s.first_sem_marks, s.user_id,
	d.id, d.name, d.is_major,
	p.id, p.name
`

const studentJoins = `
	FROM students s
	JOIN departments d ON d.id = s.department_id
	JOIN pathways p ON p.id = s.pathway_id
`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var department models.Department
	var pathway models.Pathway

	err := row.Scan(
		&student.ID,
		&student.AdmissionNumber,
		&student.Name,
		&student.DOB,
		&student.Email,
		&student.DepartmentID,
		&student.Category,
		&student.PathwayID,
		&student.CurrentSem,
		&student.NormalizedMarks,
		&student.FirstSemMarks,
		&student.UserID,
		&department.ID,
		&department.Name,
		&department.IsMajor,
		&pathway.ID,
		&pathway.Name,
	)
	if err != nil {
		return nil, err
	}

	student.Department = &department
	student.Pathway = &pathway
	return &student, nil
}

// Create creates a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (admission_number, name, dob, email, department_id,
			admission_category, pathway_id, current_sem, normalized_marks, first_sem_marks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.AdmissionNumber, student.Name, student.DOB, student.Email,
		student.DepartmentID, student.Category, student.PathwayID,
		student.CurrentSem, student.NormalizedMarks, student.FirstSemMarks,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_admission_number_key") {
			return apperrors.ErrAdmissionNumberExists
		}
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student with department and pathway populated
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + studentJoins + ` WHERE s.id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByAdmissionNumber retrieves a student by admission number
func (r *StudentRepository) GetByAdmissionNumber(ctx context.Context, admissionNumber string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + studentJoins + ` WHERE s.admission_number = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, admissionNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByUserID retrieves the student linked to a login account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + studentJoins + ` WHERE s.user_id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetBySemester retrieves all students of a semester in admission-number order
func (r *StudentRepository) GetBySemester(ctx context.Context, semester int) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + studentJoins + `
		WHERE s.current_sem = $1
		ORDER BY s.admission_number`

	rows, err := r.db.Query(ctx, query, semester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetAll retrieves all students in admission-number order
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + studentJoins + ` ORDER BY s.admission_number`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update updates an existing student record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, email = $2, department_id = $3, admission_category = $4,
			pathway_id = $5, current_sem = $6, normalized_marks = $7, first_sem_marks = $8
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Name, student.Email, student.DepartmentID, student.Category,
		student.PathwayID, student.CurrentSem, student.NormalizedMarks,
		student.FirstSemMarks, student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SetUserID links a provisioned login account to the student
func (r *StudentRepository) SetUserID(ctx context.Context, studentID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET user_id = $1 WHERE id = $2`, userID, studentID)
	if err != nil {
		return fmt.Errorf("error linking user to student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete deletes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
