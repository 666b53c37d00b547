// Package validation implements the request validation stage. Each schema is
// checked before the handler runs; on success the handler receives the
// normalized value (defaults filled, types coerced, unknown fields stripped),
// on failure the request terminates with a 400 carrying every violation found
// in one pass.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
)

// Validator wraps the struct validator with json-tag field names and the
// message catalog used in API responses.
type Validator struct {
	validate *validator.Validate
}

// New creates a configured validator.
func New() *Validator {
	v := validator.New()

	// Report field names from json tags so violation paths match the wire
	// format clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Check validates a schema struct and converts every failure into a field
// violation. Validation is not fail-fast: all violations are collected.
func (v *Validator) Check(schema interface{}) []apperrors.FieldViolation {
	err := v.validate.Struct(schema)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperrors.FieldViolation{{Path: "", Message: err.Error()}}
	}

	violations := make([]apperrors.FieldViolation, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		violations = append(violations, apperrors.FieldViolation{
			Path:    fieldErr.Field(),
			Message: messageFor(fieldErr),
		})
	}
	return violations
}

// messageFor renders a human-readable message for a single field failure.
func messageFor(fe validator.FieldError) string {
	field := displayName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// displayName turns a json field name into the capitalized form used in
// violation messages ("page" -> "Page", "query" -> "Search query").
func displayName(field string) string {
	switch field {
	case "query":
		return "Search query"
	case "id":
		return "ID"
	case "categoryId":
		return "Category ID"
	case "email":
		return "Email"
	case "password":
		return "Password"
	}
	if field == "" {
		return "Value"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
