package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks `validate` struct tags and folds failures into ErrValidation.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), describeTag(fe)))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(parts, ", "))
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "not a valid email"
	case "url":
		return "not a valid URL"
	case "min":
		return "shorter than " + fe.Param()
	case "max":
		return "longer than " + fe.Param()
	case "gte", "gt":
		return "below the minimum of " + fe.Param()
	default:
		return "invalid"
	}
}

// ValidateVar checks a single value against a tag list, reporting it as name.
func ValidateVar(name string, v interface{}, tag string) error {
	err := validate.Var(v, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("%w: %s is %s", ErrValidation, name, describeTag(fieldErrs[0]))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
