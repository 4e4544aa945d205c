package exceptions

import (
	"strings"

	"clinic-booking-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validationMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"min":      "is below the minimum allowed value",
	"max":      "is above the maximum allowed value",
	"oneof":    "must be one of the allowed values",
	"gt":       "must be greater than the allowed minimum",
	"uuid":     "must be a valid UUID",
	"e164":     "must be a valid phone number",
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		fieldName := strings.ToLower(firstErr.Field())
		message, ok := validationMessages[firstErr.Tag()]
		if !ok {
			message = "is invalid"
		}
		return fieldName + " " + message
	}
	return constvars.ErrClientCannotProcessRequest
}
