// Package validation wraps go-playground/validator and converts failures
// into apperrors validation errors.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/suryaansh001/shayari-backend/internal/apperrors"
)

// Validator is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	// report JSON field names rather than Go names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s. On failure it returns an apperrors validation error
// carrying message and a detail listing the offending fields.
func (v *Validator) Struct(s any, message string) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Validation(message).WithDetail(err.Error())
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+" "+friendly(fe))
	}
	sort.Strings(parts)
	return apperrors.Validation(message).WithDetail(strings.Join(parts, "; "))
}

func friendly(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	case "dive":
		return "contains an invalid entry"
	default:
		return "is invalid"
	}
}
