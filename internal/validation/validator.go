// Package validation validates request structs with go-playground/validator
// and converts failures into field-level domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/normalize"
)

// Validator wraps go-playground/validator with domain error conversion.
// It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports JSON field names and knows the
// "hexcolor6" tag (#RRGGBB).
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "":
			return fld.Name
		case "-":
			return ""
		}
		return name
	})

	//nolint:errcheck // registration only fails for an empty tag
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return normalize.Color(fl.Field().String()) != ""
	})

	return &Validator{v: v}
}

// Validate validates a struct. Failures come back as a *errors.Error with
// CodeValidation and a map of field path to message in Details.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return formatError(err)
	}
	return nil
}

func formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[fieldPath(e)] = friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

// fieldPath drops the root struct name: "RecipeInput.ingredients[1].amount"
// becomes "ingredients[1].amount".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

//nolint:gocyclo // Switch over validation tags is intentionally exhaustive.
func friendlyMessage(e validator.FieldError) string {
	isCollection := e.Kind() == reflect.Slice || e.Kind() == reflect.Array || e.Kind() == reflect.Map

	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if isCollection {
			return fmt.Sprintf("must contain at least %s item(s)", e.Param())
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		if isCollection {
			return fmt.Sprintf("must contain at most %s item(s)", e.Param())
		}
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "unique":
		return "must not contain duplicates"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "lt":
		return "must be less than " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "alphanum":
		return "must contain only letters and digits"
	case "hexcolor6":
		return "must be a color in #RRGGBB form"
	case "excludesall":
		return "contains forbidden characters"
	default:
		return "is invalid"
	}
}
