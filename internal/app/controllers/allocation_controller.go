package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/services"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/middleware"
)

// AllocationController handles the allocation run lifecycle
type AllocationController struct {
	allocationService *services.AllocationService
	preferenceService *services.PreferenceService
}

// NewAllocationController creates a new AllocationController
func NewAllocationController(allocationService *services.AllocationService, preferenceService *services.PreferenceService) *AllocationController {
	return &AllocationController{
		allocationService: allocationService,
		preferenceService: preferenceService,
	}
}

// parseSemesterQuery reads the semester query parameter
func parseSemesterQuery(ctx *gin.Context) (int, bool) {
	semester, err := strconv.Atoi(ctx.Query("semester"))
	if err != nil || semester < 1 || semester > 2 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid semester").
			WithDetails("semester must be 1 or 2")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return semester, true
}

// Status answers the double-run guard query
// @Summary Allocation status
// @Description Reports whether allotments already exist for the semester in the current academic year
// @Tags allocation
// @Produce json
// @Security BearerAuth
// @Param semester query int true "Semester (1 or 2)"
// @Success 200 {object} dto.APIResponse{data=dto.AllocationStatusResponse} "Status retrieved"
// @Router /allocation/status [get]
func (c *AllocationController) Status(ctx *gin.Context) {
	semester, ok := parseSemesterQuery(ctx)
	if !ok {
		return
	}

	status, err := c.allocationService.Status(ctx, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: status, Timestamp: time.Now()})
}

// Incomplete lists students blocking a run
// @Summary List students without submissions
// @Description Lists the admission numbers of students in the semester who have not submitted preferences
// @Tags allocation
// @Produce json
// @Security BearerAuth
// @Param semester query int true "Semester (1 or 2)"
// @Success 200 {object} dto.APIResponse{data=dto.IncompletePreferencesResponse} "List retrieved"
// @Router /allocation/incomplete [get]
func (c *AllocationController) Incomplete(ctx *gin.Context) {
	semester, ok := parseSemesterQuery(ctx)
	if !ok {
		return
	}

	missing, err := c.preferenceService.AdmissionNumbersWithoutSubmission(ctx, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.IncompletePreferencesResponse{AdmissionNumbers: missing},
		Timestamp: time.Now(),
	})
}

// Run triggers one allocation run
// @Summary Run the allocation
// @Description Executes the multi-pass allocation for the semester inside a single transaction. Refuses to start if allotments already exist or any student lacks a submission.
// @Tags allocation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RunAllocationRequest true "Target semester"
// @Success 200 {object} dto.APIResponse{data=dto.AllocationRunSummary} "Run committed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Allotments already exist or preferences incomplete"
// @Router /allocation/run [post]
func (c *AllocationController) Run(ctx *gin.Context) {
	var req dto.RunAllocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	summary, err := c.allocationService.Run(ctx, req.Semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: summary, Timestamp: time.Now()})
}

// Clear wipes the semester's allotments for a fresh run
// @Summary Clear allotments
// @Description Deletes the semester's allotments and resets the batch fill counters in one transaction
// @Tags allocation
// @Produce json
// @Security BearerAuth
// @Param semester query int true "Semester (1 or 2)"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Allotments cleared"
// @Router /allocation [delete]
func (c *AllocationController) Clear(ctx *gin.Context) {
	semester, ok := parseSemesterQuery(ctx)
	if !ok {
		return
	}

	deleted, err := c.allocationService.Clear(ctx, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"deleted": deleted},
		Timestamp: time.Now(),
	})
}
