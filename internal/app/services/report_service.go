package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/repositories"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
)

// noAllotment is the placeholder for a paper slot left unfilled by the run.
const noAllotment = "-"

// ReportService builds allotment result views and CSV exports
type ReportService struct {
	allotmentRepo *repositories.AllotmentRepository
	studentRepo   *repositories.StudentRepository
	academicYear  string
}

// NewReportService creates a new report service instance
func NewReportService(allotmentRepo *repositories.AllotmentRepository, studentRepo *repositories.StudentRepository, academicYear string) *ReportService {
	return &ReportService{
		allotmentRepo: allotmentRepo,
		studentRepo:   studentRepo,
		academicYear:  academicYear,
	}
}

// BuildReport aggregates the semester's allotments into one row per student,
// ordered by admission number.
func (s *ReportService) BuildReport(ctx context.Context, semester int) (*dto.AllotmentReport, error) {
	if semester < 1 || semester > 2 {
		return nil, apperrors.NewValidationError("semester must be 1 or 2")
	}

	students, err := s.studentRepo.GetBySemester(ctx, semester)
	if err != nil {
		return nil, err
	}
	allotments, err := s.allotmentRepo.GetForSemester(ctx, semester, s.academicYear)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int64][]*models.CourseAllotment, len(students))
	for _, a := range allotments {
		byStudent[a.StudentID] = append(byStudent[a.StudentID], a)
	}

	report := &dto.AllotmentReport{Semester: semester}
	for _, paperNo := range models.PaperNumbers {
		report.PaperHeaders = append(report.PaperHeaders, paperLabel(semester, paperNo))
	}

	for _, student := range students {
		row := dto.AllotmentRow{
			AdmissionNumber: student.AdmissionNumber,
			Name:            student.Name,
			Category:        string(student.Category),
			Papers:          make([]string, models.NumPapers),
		}
		if student.Department != nil {
			row.Department = student.Department.Name
		}
		if student.Pathway != nil {
			row.Pathway = student.Pathway.Name
		}
		for i := range row.Papers {
			row.Papers[i] = noAllotment
		}
		for _, a := range byStudent[student.ID] {
			if a.PaperNo < 1 || a.PaperNo > models.NumPapers {
				continue
			}
			if a.Batch != nil && a.Batch.Course != nil {
				row.Papers[a.PaperNo-1] = a.Batch.Course.Name
			}
		}
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// GetStudentAllotments returns one student's allotments with course details
func (s *ReportService) GetStudentAllotments(ctx context.Context, studentID int64) ([]*models.CourseAllotment, error) {
	return s.allotmentRepo.GetByStudent(ctx, studentID)
}

// WriteCSV renders a report as CSV
func (s *ReportService) WriteCSV(w io.Writer, report *dto.AllotmentReport) error {
	cw := csv.NewWriter(w)

	header := append([]string{"Admission Number", "Name", "Department", "Pathway", "Category"}, report.PaperHeaders...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range report.Rows {
		record := append([]string{row.AdmissionNumber, row.Name, row.Department, row.Pathway, row.Category}, row.Papers...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
