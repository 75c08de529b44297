package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/persona-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads.
//
// Validate returns validator.ValidationErrors, or an *errs.HTTPError when the
// payload must be rejected with a specific message.
type Validatable interface {
	Validate() error
}

// NewValidator returns a validator that reports JSON field names and knows
// the notblank rule.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				continue
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	_ = v.RegisterValidation("notblank", notBlank)

	return v
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Pointer:
		return !field.IsNil() && strings.TrimSpace(field.Elem().String()) != ""
	default:
		return !field.IsZero()
	}
}

// BindAndValidate binds request data into payload and validates it.
//
// Bind failures and validation failures are returned as 400 *errs.HTTPError.
// An *errs.HTTPError returned by Validate is passed through untouched.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	err := payload.Validate()
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	msg, fieldErrors := extractValidationError(err)
	return errs.NewBadRequestError(msg, true, nil, fieldErrors)
}

func bindError(err error) error {
	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) {
		fieldErrors := []errs.FieldError{{Field: bindingErr.Field, Error: "has an invalid value"}}
		return errs.NewBadRequestError("Invalid request", false, nil, fieldErrors)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return errs.NewBadRequestError(fmt.Sprint(echoErr.Message), false, nil, nil)
	}

	return errs.NewBadRequestError("Invalid request", false, nil, nil)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), nil
	}

	for _, fe := range validationErrors {
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "notblank":
			msg = "must not be blank"
		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}
		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}
		case "email":
			msg = "must be a valid email address"
		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{Field: fe.Field(), Error: msg})
	}

	return "Validation failed", fieldErrors
}
