package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhinand128/project-fyugp-course-allotment/internal/app/models/dto"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/apperrors"
	"github.com/abhinand128/project-fyugp-course-allotment/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers call
// this for any error crossing the service boundary.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	var details interface{}
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
		if len(customErr.Details) > 0 {
			details = customErr.Details
		}
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		errorDetail := dto.NewErrorDetail(code, message)
		if details != nil {
			errorDetail = errorDetail.WithDetails(details)
		}
		c.JSON(status, dto.NewErrorResponse(errorDetail))
	}

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case apperrors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")
	case apperrors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case apperrors.Is(err, apperrors.ErrTokenNotFound):
		respond(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Refresh token not found or expired")
	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	case apperrors.Is(err,
		apperrors.ErrResourceNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrDepartmentNotFound,
		apperrors.ErrPathwayNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrBatchNotFound,
		apperrors.ErrAllotmentNotFound,
		apperrors.ErrSettingsNotFound,
		apperrors.ErrPreferencesNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, err.Error())

	case apperrors.Is(err,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrAdmissionNumberExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrDepartmentAlreadyExists,
		apperrors.ErrCourseAlreadyExists,
		apperrors.ErrBatchAlreadyExists,
		apperrors.ErrSettingsAlreadyExist,
		apperrors.ErrCredentialAlreadyProvisioned,
		apperrors.ErrPreferencesAlreadySubmitted):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err.Error())

	case apperrors.Is(err, apperrors.ErrAllotmentsExist):
		respond(http.StatusConflict, dto.ErrorCodeAllotmentsExist,
			"Allotments already exist for this semester; clear them before re-running")
	case apperrors.Is(err, apperrors.ErrIncompletePreferences):
		respond(http.StatusConflict, dto.ErrorCodeIncompletePreferences,
			"One or more students have not submitted preferences")

	case apperrors.Is(err,
		apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrConflict,
		apperrors.ErrDepartmentNotMajor,
		apperrors.ErrDepartmentHasRelations,
		apperrors.ErrBatchInactive,
		apperrors.ErrNoEligibleBatches,
		apperrors.ErrInvalidQuotaPercentage):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, err.Error())

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
