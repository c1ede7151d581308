package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/services"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/middleware"
)

// PreferenceController handles the student-facing preference capture flow
type PreferenceController struct {
	preferenceService *services.PreferenceService
	studentService    *services.StudentService
}

// NewPreferenceController creates a new PreferenceController
func NewPreferenceController(preferenceService *services.PreferenceService, studentService *services.StudentService) *PreferenceController {
	return &PreferenceController{
		preferenceService: preferenceService,
		studentService:    studentService,
	}
}

// studentFromContext resolves the authenticated user to their student record
func (c *PreferenceController) studentFromContext(ctx *gin.Context) (*models.Student, bool) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}

	student, err := c.studentService.GetStudentByUserID(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return student, true
}

// GetForm returns the preference form for the authenticated student
// @Summary Get the preference form
// @Description Computes the eligible batches and required choice counts for every paper slot of the student's current semester
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PreferenceFormResponse} "Form computed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /preferences/form [get]
func (c *PreferenceController) GetForm(ctx *gin.Context) {
	student, ok := c.studentFromContext(ctx)
	if !ok {
		return
	}

	form, err := c.preferenceService.BuildForm(ctx, student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: form, Timestamp: time.Now()})
}

// Submit stores the student's ranked preference submission
// @Summary Submit preferences
// @Description Validates the ranked submission against the eligibility rules and stores it. Each student submits once per capture window.
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitPreferencesRequest true "Ranked selections for all four papers"
// @Success 201 {object} dto.APIResponse{data=dto.SuccessResponse} "Preferences stored"
// @Failure 400 {object} dto.ErrorResponse "Submission violates the eligibility rules"
// @Failure 409 {object} dto.ErrorResponse "Preferences already submitted"
// @Router /preferences [post]
func (c *PreferenceController) Submit(ctx *gin.Context) {
	student, ok := c.studentFromContext(ctx)
	if !ok {
		return
	}

	var req dto.SubmitPreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid submission").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.preferenceService.Submit(ctx, student.ID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Preferences submitted"},
		Timestamp: time.Now(),
	})
}

// GetOwn returns the student's stored preferences
// @Summary Get submitted preferences
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CoursePreference} "Preferences retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /preferences [get]
func (c *PreferenceController) GetOwn(ctx *gin.Context) {
	student, ok := c.studentFromContext(ctx)
	if !ok {
		return
	}

	preferences, err := c.preferenceService.GetByStudent(ctx, student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: preferences, Timestamp: time.Now()})
}

// GenerateDummy fills randomized valid preferences for testing
// @Summary Generate dummy preferences
// @Description Fills randomized valid preferences for every student of the semester without a submission. Available outside production only.
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateDummyPreferencesRequest true "Target semester"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Dummy preferences generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /preferences/dummy [post]
func (c *PreferenceController) GenerateDummy(ctx *gin.Context) {
	var req dto.GenerateDummyPreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	filled, err := c.preferenceService.GenerateDummy(ctx, req.Semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"studentsFilled": filled},
		Timestamp: time.Now(),
	})
}
