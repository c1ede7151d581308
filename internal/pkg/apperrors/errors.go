package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound              = errors.New("student not found")
	ErrAdmissionNumberExists        = errors.New("admission number already exists")
	ErrEmailAlreadyExists           = errors.New("email already exists")
	ErrCredentialAlreadyProvisioned = errors.New("student already has a login credential")
)

// Department errors
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name already exists")
	ErrDepartmentHasRelations  = errors.New("department has associated data and cannot be deleted")
	ErrDepartmentNotMajor      = errors.New("department is not flagged as a major department")
)

// Pathway errors
var (
	ErrPathwayNotFound = errors.New("pathway not found")
)

// Course and batch errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course with this code and name already exists")
	ErrBatchNotFound       = errors.New("batch not found")
	ErrBatchAlreadyExists  = errors.New("batch for this course, year and part already exists")
	ErrBatchInactive       = errors.New("batch is not accepting allotments")
)

// Preference errors
var (
	ErrPreferencesAlreadySubmitted = errors.New("preferences already submitted")
	ErrPreferencesNotFound         = errors.New("no preferences submitted")
	ErrNoEligibleBatches           = errors.New("no eligible batches for a required paper")
)

// Allocation errors
var (
	ErrAllotmentsExist        = errors.New("allotments already exist for this semester")
	ErrIncompletePreferences  = errors.New("one or more students have not submitted preferences")
	ErrAllotmentNotFound      = errors.New("allotment not found")
	ErrSettingsNotFound       = errors.New("allocation settings not found")
	ErrSettingsAlreadyExist   = errors.New("allocation settings already exist for this department")
	ErrInvalidQuotaPercentage = errors.New("quota percentages must sum to 100")
)

// Is reports whether err matches target or any of the additional errors.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping err
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewValidationError creates a CustomError wrapping ErrValidationFailed
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewConflictError creates a CustomError wrapping ErrConflict
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}
