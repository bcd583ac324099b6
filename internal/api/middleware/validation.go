package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"whisper-web/internal/api/errors"
)

// ValidateForm binds the request form into req and checks its binding tags.
// Tag failures come back as a validation APIError with one entry per field.
func ValidateForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		validationErrors := make(map[string]string)

		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrs {
				field := strings.ToLower(fieldError.Field())

				switch fieldError.Tag() {
				case "required":
					validationErrors[field] = "is required"
				case "alpha":
					validationErrors[field] = "must contain letters only"
				case "min":
					validationErrors[field] = "is too short"
				case "max":
					validationErrors[field] = "is too long"
				default:
					validationErrors[field] = "is invalid"
				}
			}
		} else {
			return errors.NewBadRequestError("Malformed form data")
		}

		return errors.NewValidationError("Validation failed", validationErrors)
	}

	return nil
}
