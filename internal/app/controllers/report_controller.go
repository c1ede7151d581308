package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/services"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/middleware"
)

// ReportController handles allotment result views and exports
type ReportController struct {
	reportService  *services.ReportService
	studentService *services.StudentService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, studentService *services.StudentService) *ReportController {
	return &ReportController{
		reportService:  reportService,
		studentService: studentService,
	}
}

// GetReport returns the semester's allotment report
// @Summary Allotment report
// @Description Aggregates the semester's allotments into one row per student, ordered by admission number
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param semester query int true "Semester (1 or 2)"
// @Success 200 {object} dto.APIResponse{data=dto.AllotmentReport} "Report built"
// @Router /reports/allotments [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	semester, ok := parseSemesterQuery(ctx)
	if !ok {
		return
	}

	report, err := c.reportService.BuildReport(ctx, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: report, Timestamp: time.Now()})
}

// ExportCSV streams the semester's allotment report as CSV
// @Summary Export allotments as CSV
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param semester query int true "Semester (1 or 2)"
// @Success 200 {string} string "CSV file"
// @Router /reports/allotments/csv [get]
func (c *ReportController) ExportCSV(ctx *gin.Context) {
	semester, ok := parseSemesterQuery(ctx)
	if !ok {
		return
	}

	report, err := c.reportService.BuildReport(ctx, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("allotments_sem%d.csv", semester)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Header("Content-Type", "text/csv")
	if err := c.reportService.WriteCSV(ctx.Writer, report); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
}

// GetOwnAllotments returns the authenticated student's allotments
// @Summary Get own allotments
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CourseAllotment} "Allotments retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /allotments/me [get]
func (c *ReportController) GetOwnAllotments(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.GetStudentByUserID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	allotments, err := c.reportService.GetStudentAllotments(ctx, student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: allotments, Timestamp: time.Now()})
}
