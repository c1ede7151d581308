package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/services"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/middleware"
)

// BatchController handles batch operations
type BatchController struct {
	batchService *services.BatchService
}

// NewBatchController creates a new BatchController
func NewBatchController(batchService *services.BatchService) *BatchController {
	return &BatchController{batchService: batchService}
}

// CreateBatch instantiates a course as an enrollable batch
// @Summary Create a batch
// @Description Instantiates a course for an academic year and part. New batches start active.
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBatchRequest true "Batch information"
// @Success 201 {object} dto.APIResponse{data=models.Batch} "Batch created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Batch already exists"
// @Router /batches [post]
func (c *BatchController) CreateBatch(ctx *gin.Context) {
	var req dto.CreateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid batch data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	batch, err := c.batchService.CreateBatch(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: batch, Timestamp: time.Now()})
}

// GetBatches retrieves batches matching the query filter
// @Summary List batches
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param category query string false "Course category (DSC or MDC)"
// @Param departmentId query int false "Owning department"
// @Param semester query int false "Semester (1 or 2)"
// @Success 200 {object} dto.APIResponse{data=[]models.Batch} "Batches retrieved"
// @Router /batches [get]
func (c *BatchController) GetBatches(ctx *gin.Context) {
	var filter dto.CourseFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	batches, err := c.batchService.GetBatches(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: batches, Timestamp: time.Now()})
}

// GetBatchByID retrieves a batch by ID
// @Summary Get batch by ID
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=models.Batch} "Batch retrieved"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /batches/{id} [get]
func (c *BatchController) GetBatchByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	batch, err := c.batchService.GetBatchByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: batch, Timestamp: time.Now()})
}

// SetBatchStatus toggles whether a batch accepts allotments
// @Summary Set batch status
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID"
// @Param request body dto.SetBatchStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /batches/{id}/status [put]
func (c *BatchController) SetBatchStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetBatchStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Status == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.batchService.SetBatchStatus(ctx, id, *req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Batch status updated"},
		Timestamp: time.Now(),
	})
}

// DeleteBatch removes a batch
// @Summary Delete a batch
// @Description Fails if allotments still reference the batch
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Batch deleted"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /batches/{id} [delete]
func (c *BatchController) DeleteBatch(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.batchService.DeleteBatch(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Batch deleted"},
		Timestamp: time.Now(),
	})
}
