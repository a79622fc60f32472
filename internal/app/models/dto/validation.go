package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a binding error into an ErrorDetail. Field
// level failures from the validator are listed per field; anything else
// (malformed JSON, type mismatches) becomes a generic validation error.
func HandleValidationError(err error) *ErrorDetail {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		violations := NewValidationErrors()
		for _, fe := range fieldErrs {
			violations.AddError(fieldName(fe), validationMessage(fe))
		}
		return NewErrorDetail(ErrorCodeValidationFailed, "Request validation failed").
			WithDetails(violations.Errors)
	}

	return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").
		WithDetails(err.Error())
}

func fieldName(fe validator.FieldError) string {
	if fe.Field() == "" {
		return fe.StructField()
	}
	return strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation on '%s'", fe.Tag())
	}
}
