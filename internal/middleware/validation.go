package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/tmorrow/schoolmock/internal/app/models/dto"
)

// BindingErrorDetail turns a request-binding failure into the standard
// error detail, listing each failed field when the validator reports them.
func BindingErrorDetail(err error) *dto.ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, 0, len(verrs))
		for _, e := range verrs {
			messages = append(messages, formatValidationError(e))
		}
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		if len(verrs) > 0 {
			detail = detail.WithField(verrs[0].Field())
		}
		return detail.WithDetails(messages)
	}

	return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
