package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bodyValidator checks request DTOs against their validate tags.
type bodyValidator struct {
	validate *validator.Validate
}

func newBodyValidator() *bodyValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &bodyValidator{validate: v}
}

// Validate implements echo.Validator.
func (v *bodyValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var b strings.Builder
	for i, fe := range fieldErrs {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "'%s': %s", fe.Field(), messageFor(fe))
	}
	return errors.New(b.String())
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return "should be greater than " + fe.Param()
	case "gte", "min":
		return "should be at least " + fe.Param()
	case "lte", "max":
		return "should be at most " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "email":
		return "should be an email address"
	case "uuid":
		return "should be a uuid"
	}
	return "incorrect value passed"
}
