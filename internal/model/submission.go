// Package model defines domain entities for the application.
package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
)

// ErrMissingField is returned when a submission lacks a required field.
var ErrMissingField = errors.New("missing required field")

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Submission is a parsed contact-form payload. It lives for one invocation.
type Submission struct {
	// ID correlates logs and spans for one invocation. Never persisted.
	ID string `json:"-"`

	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// NewSubmission returns a Submission with a fresh correlation ID.
func NewSubmission(name, email, message string) *Submission {
	return &Submission{
		ID:      ulid.Make().String(),
		Name:    name,
		Email:   email,
		Message: message,
	}
}

// Validate reports the first required field that is absent or empty.
// Email format is not checked; the mail provider is the authority on that.
func (s *Submission) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, verrs[0].Field())
	}
	return fmt.Errorf("validate submission: %w", err)
}
