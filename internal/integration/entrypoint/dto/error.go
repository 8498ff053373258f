// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ValidationErrorToText renders a single failed binding rule.
func ValidationErrorToText(e validator.FieldError) string {
	field := jsonFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "email":
		return "Invalid email format"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s is not valid", field)
}

// BindingErrorDetails maps each failed field to a readable reason. Errors
// that are not validation failures, such as malformed JSON, yield a single
// "body" entry.
func BindingErrorDetails(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{"body": "malformed request: " + err.Error()}
	}

	details := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		details[jsonFieldName(fe.Field())] = ValidationErrorToText(fe)
	}
	return details
}

// jsonFieldName lower-cases the first letter so "TypeOfBudget" reads as
// the JSON key "typeOfBudget".
func jsonFieldName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return string(unicode.ToLower(r)) + field[size:]
}
