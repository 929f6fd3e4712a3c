// internal/utils/validation_errors.go
package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors turns a validator error into a field -> message
// map suitable for the API response body. Non-validator errors produce a
// single generic entry.
func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrors {
			fieldName := fieldErr.Field()
			tag := fieldErr.Tag()

			switch tag {
			case "required":
				errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required.", fieldName)
			case "oneof":
				errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s.", fieldName, fieldErr.Param())
			case "min":
				errorsMap[fieldName] = fmt.Sprintf("Field '%s' must have at least %s items or characters.", fieldName, fieldErr.Param())
			case "max":
				errorsMap[fieldName] = fmt.Sprintf("Field '%s' must have at most %s items or characters.", fieldName, fieldErr.Param())
			case "gt":
				errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be greater than %s.", fieldName, fieldErr.Param())
			case "gte":
				errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s.", fieldName, fieldErr.Param())
			default:
				errorsMap[fieldName] = fmt.Sprintf("Field '%s' failed validation on '%s'.", fieldName, tag)
			}
		}
		return errorsMap
	}

	errorsMap["error"] = "Invalid request payload"
	return errorsMap
}
