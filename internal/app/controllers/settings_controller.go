package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/services"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/middleware"
)

// SettingsController handles allocation quota configuration
type SettingsController struct {
	settingsService *services.SettingsService
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService *services.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// SaveSettings creates or updates a department's quota configuration
// @Summary Save allocation settings
// @Description Creates or updates the quota configuration of a major department. The three category percentages must sum to 100.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveAllocationSettingsRequest true "Quota configuration"
// @Success 200 {object} dto.APIResponse{data=models.AllocationSettings} "Settings saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid quota configuration"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /settings [put]
func (c *SettingsController) SaveSettings(ctx *gin.Context) {
	var req dto.SaveAllocationSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid settings data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	settings, err := c.settingsService.SaveSettings(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: settings, Timestamp: time.Now()})
}

// GetSettings retrieves every department's quota configuration
// @Summary List allocation settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AllocationSettings} "Settings retrieved"
// @Router /settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	settings, err := c.settingsService.GetSettings(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: settings, Timestamp: time.Now()})
}

// GetSettingsByDepartment retrieves one department's quota configuration
// @Summary Get allocation settings by department
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param departmentId path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=models.AllocationSettings} "Settings retrieved"
// @Failure 404 {object} dto.ErrorResponse "Settings not found"
// @Router /settings/{departmentId} [get]
func (c *SettingsController) GetSettingsByDepartment(ctx *gin.Context) {
	departmentID, ok := parseIDParam(ctx, "departmentId")
	if !ok {
		return
	}

	settings, err := c.settingsService.GetSettingsByDepartment(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: settings, Timestamp: time.Now()})
}
