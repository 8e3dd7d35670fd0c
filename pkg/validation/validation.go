package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "kampomido/pkg/domain-errors"
	s "kampomido/pkg/string"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate validates a form struct and returns a validation error carrying a
// per-field error map. Pages merge that map into their local form-error state
// and block submission before any service call is made.
func Validate(form any) error {
	err := defaultValidator.Struct(form)
	if err == nil {
		return nil
	}
	fields := FieldErrors(err)
	return dErrors.NewValidation("validation failed", fields)
}

// FieldErrors converts validator errors into a field -> message map keyed by
// snake_cased field names.
func FieldErrors(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return map[string]string{"form": "invalid form"}
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fieldName := fe.Field()
		if fieldName == "" {
			fieldName = fe.StructField()
		}
		field := s.ToSnakeCase(fieldName)
		fields[field] = fieldMessage(field, fe)
	}
	return fields
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_without":
		return fmt.Sprintf("%s is required when %s is empty", field, s.ToSnakeCase(fe.Param()))
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "e164":
		return fmt.Sprintf("%s must be a valid phone number", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
