package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Plan errors
var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrPlanInUse    = errors.New("plan has active subscriptions and cannot be deleted")
)

// Subscription and payment errors
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPaymentProofNotFound = errors.New("payment proof not found")
	ErrInvalidTransition    = errors.New("illegal status transition")
)

// Course and enrollment errors
var (
	ErrCourseNotFound         = errors.New("course not found")
	ErrLessonNotFound         = errors.New("lesson not found")
	ErrEnrollmentNotFound     = errors.New("enrollment not found")
	ErrAlreadyEnrolled        = errors.New("user is already enrolled in this course")
	ErrLessonAlreadyCompleted = errors.New("lesson already completed for this enrollment")
	ErrLessonOrderTaken       = errors.New("a lesson with this order already exists in the course")
)

// Event errors
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
)

// Career assessment errors
var (
	ErrCareerUserNotFound    = errors.New("career user not found")
	ErrAssessmentNotFound    = errors.New("career assessment not found")
	ErrFeedbackAlreadyExists = errors.New("feedback already submitted for this assessment")
	ErrShareCodeCollision    = errors.New("share code collision")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
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
