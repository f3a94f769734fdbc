// Package validation binds request payloads and validates them.
//
// Rules live in `validate` struct tags (go-playground/validator) or in a
// payload's own Validate method; failures are turned into errs.HTTPError
// values carrying one FieldError per offending field.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/registry/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads that know how to validate
// themselves, usually by calling validator.Struct on their own tags.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a validation issue that cannot be expressed
// with a struct tag.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a list of custom validation issues.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// NewValidator returns a validator that reports fields by their wire name
// (json tag, or query tag for query-string fields) instead of the Go name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			if query := fld.Tag.Get("query"); query != "" {
				return query
			}
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// queryBinder binds query parameters for methods echo does not bind them for.
var queryBinder = &echo.DefaultBinder{}

// BindAndValidate binds path parameters, query parameters and the JSON body
// into payload, then validates it.
//
// Malformed input (bad JSON, wrong types) yields a 400; a payload that
// parses but breaks a rule yields a 422 with per-field errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	// echo only binds the query string for GET, DELETE and HEAD.
	switch c.Request().Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if err := queryBinder.BindQueryParams(c, payload); err != nil {
			return bindError(err)
		}
	}

	return Validate(payload)
}

// Validate runs payload's rules and converts failures into a 422.
func Validate(payload Validatable) error {
	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewUnprocessableEntityError(msg, fieldErrors)
	}
	return nil
}

func bindError(err error) error {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message := fmt.Sprintf("%v", echoErr.Message)
		if echoErr.Internal != nil {
			message = echoErr.Internal.Error()
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}
	return errs.NewBadRequestError(err.Error(), false, nil, nil, nil)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed: " + err.Error(), nil
	}

	for _, fe := range validationErrors {
		field := fe.Field()
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"

		case "min", "gte":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}

		case "max", "lte":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())

		case "email":
			msg = "must be a valid email address"

		case "url":
			msg = "must be a valid URL"

		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
