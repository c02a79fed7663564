// Package validation provides struct validation using go-playground/validator v10.
// It keeps a single validator instance with the custom rules used by account input.
//
// Example usage:
//
//	type RegisterInput struct {
//	    Email string `validate:"required,simple_email"`
//	}
//
//	if err := validation.ValidateStruct(&in); err != nil {
//	    first := err.Errors()[0]
//	    ...
//	}
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// simpleEmailPattern is intentionally loose: something@something.tld with no whitespace.
var simpleEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError represents a single field validation failure.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s failed %s", e.Field, e.Tag)
}

// RequestValidationError is a collection of field failures in struct field order.
type RequestValidationError struct {
	errors []FieldError
}

// Errors returns the individual field failures.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

// HasTag reports whether any failure used the given tag.
func (ve *RequestValidationError) HasTag(tag string) bool {
	for _, e := range ve.errors {
		if e.Tag == tag {
			return true
		}
	}
	return false
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.errors))
	for _, e := range ve.errors {
		messages = append(messages, e.Error())
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the shared validator, registering custom rules on first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("simple_email", validateSimpleEmail); err != nil {
			panic(fmt.Sprintf("failed to register simple_email validator: %v", err))
		}
	})
	return validate
}

// ValidateStruct validates s and returns nil or a *RequestValidationError.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &RequestValidationError{errors: []FieldError{{Field: "", Tag: "invalid"}}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return &RequestValidationError{errors: out}
}

// IsSimpleEmail reports whether s passes the loose email pattern.
func IsSimpleEmail(s string) bool {
	return simpleEmailPattern.MatchString(s)
}

func validateSimpleEmail(fl validator.FieldLevel) bool {
	return IsSimpleEmail(fl.Field().String())
}
