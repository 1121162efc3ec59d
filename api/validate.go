package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Sandanu06/citf-backend-v1/errs"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so "field" in error bodies matches the request.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs struct tags on req. Any failure becomes a 400 carrying
// msg and the first failing field.
func validateRequest(req interface{}, msg string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		return errs.NewMissingRequiredFieldError(msg, validationErrs[0].Field())
	}
	return errs.NewInternalErrorWithCause("Request validation failed", err)
}
