package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/auth"
)

// initialPasswordLayout renders a student's date of birth as their first
// login password, e.g. 17/04/06 for 2006-04-17.
const initialPasswordLayout = "02/01/06"

// StudentService handles student records and credential provisioning
type StudentService struct {
	studentRepo    *repositories.StudentRepository
	departmentRepo *repositories.DepartmentRepository
	pathwayRepo    *repositories.PathwayRepository
	userRepo       *repositories.UserRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	departmentRepo *repositories.DepartmentRepository,
	pathwayRepo *repositories.PathwayRepository,
	userRepo *repositories.UserRepository,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		departmentRepo: departmentRepo,
		pathwayRepo:    pathwayRepo,
		userRepo:       userRepo,
	}
}

// CreateStudent validates and creates a student record
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	category := models.AdmissionCategory(req.Category)
	if !category.Valid() {
		return nil, apperrors.NewValidationError("unknown admission category")
	}
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return nil, apperrors.NewValidationError("dob must use YYYY-MM-DD")
	}
	if req.CurrentSem < 1 || req.CurrentSem > 2 {
		return nil, apperrors.NewValidationError("semester must be 1 or 2")
	}

	department, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	pathway, err := s.pathwayRepo.GetByID(ctx, req.PathwayID)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		AdmissionNumber: strings.TrimSpace(req.AdmissionNumber),
		Name:            strings.TrimSpace(req.Name),
		DOB:             dob,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		DepartmentID:    req.DepartmentID,
		Category:        category,
		PathwayID:       req.PathwayID,
		CurrentSem:      req.CurrentSem,
		NormalizedMarks: req.NormalizedMarks,
		FirstSemMarks:   req.FirstSemMarks,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	student.Department = department
	student.Pathway = pathway
	return student, nil
}

// GetStudentByID retrieves a student by ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid student ID")
	}
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentByUserID retrieves the student owning a login account
func (s *StudentService) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// GetStudents retrieves all students
func (s *StudentService) GetStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// GetPathways lists the seeded academic pathways
func (s *StudentService) GetPathways(ctx context.Context) ([]*models.Pathway, error) {
	return s.pathwayRepo.GetAll(ctx)
}

// GetStudentsBySemester retrieves a semester's students in admission-number order
func (s *StudentService) GetStudentsBySemester(ctx context.Context, semester int) ([]*models.Student, error) {
	if semester < 1 || semester > 2 {
		return nil, apperrors.NewValidationError("semester must be 1 or 2")
	}
	return s.studentRepo.GetBySemester(ctx, semester)
}

// UpdateStudent applies the mutable fields of the request to a student
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		student.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		student.DepartmentID = *req.DepartmentID
	}
	if req.Category != nil {
		category := models.AdmissionCategory(*req.Category)
		if !category.Valid() {
			return nil, apperrors.NewValidationError("unknown admission category")
		}
		student.Category = category
	}
	if req.PathwayID != nil {
		if _, err := s.pathwayRepo.GetByID(ctx, *req.PathwayID); err != nil {
			return nil, err
		}
		student.PathwayID = *req.PathwayID
	}
	if req.CurrentSem != nil {
		if *req.CurrentSem < 1 || *req.CurrentSem > 2 {
			return nil, apperrors.NewValidationError("semester must be 1 or 2")
		}
		student.CurrentSem = *req.CurrentSem
	}
	if req.NormalizedMarks != nil {
		student.NormalizedMarks = *req.NormalizedMarks
	}
	if req.FirstSemMarks != nil {
		student.FirstSemMarks = req.FirstSemMarks
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent removes a student record
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid student ID")
	}
	return s.studentRepo.Delete(ctx, id)
}

// ProvisionCredential creates the student's login account. The username is
// the admission number and the initial password derives from the date of
// birth; it is returned exactly once.
func (s *StudentService) ProvisionCredential(ctx context.Context, studentID int64) (*dto.CredentialResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.UserID != nil {
		return nil, apperrors.ErrCredentialAlreadyProvisioned
	}

	initialPassword := student.DOB.Format(initialPasswordLayout)
	hashed, err := auth.HashPassword(initialPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: student.AdmissionNumber,
		Password: hashed,
		Email:    student.Email,
		RoleType: models.RoleStudent,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.studentRepo.SetUserID(ctx, student.ID, user.ID); err != nil {
		return nil, fmt.Errorf("error linking credential: %w", err)
	}

	return &dto.CredentialResponse{
		Username:        user.Username,
		InitialPassword: initialPassword,
	}, nil
}
