package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// FieldIssue describes a single violated request constraint
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidation is returned when a quote request is malformed.
// Message carries the first violated constraint, Issues carries all of them.
type ErrValidation struct {
	Status  int
	Message string
	Issues  []FieldIssue
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// NewValidation builds a 400 validation error from the collected issues
func NewValidation(issues []FieldIssue) *ErrValidation {
	msg := "invalid request"
	if len(issues) > 0 {
		msg = issues[0].Message
	}
	return &ErrValidation{
		Status:  http.StatusBadRequest,
		Message: msg,
		Issues:  issues,
	}
}

// ErrUnsupportedCurrency is returned for currency codes outside the rate table
type ErrUnsupportedCurrency struct {
	Code string
}

func (e *ErrUnsupportedCurrency) Error() string {
	return fmt.Sprintf("unsupported currency: %q", e.Code)
}

// ErrConfigLoad wraps a failure to read or decode static configuration
type ErrConfigLoad struct {
	Resource string
	Err      error
}

func (e *ErrConfigLoad) Error() string {
	return fmt.Sprintf("failed to load %s config: %v", e.Resource, e.Err)
}

func (e *ErrConfigLoad) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// AsValidation reports whether err (or anything it wraps) is a validation error
func AsValidation(err error) (*ErrValidation, bool) {
	var target *ErrValidation
	if stderrors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsConfigLoad reports whether err (or anything it wraps) is a config load error
func AsConfigLoad(err error) (*ErrConfigLoad, bool) {
	var target *ErrConfigLoad
	if stderrors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsNotFound reports whether err (or anything it wraps) is a not-found error
func IsNotFound(err error) bool {
	var target *ErrNotFound
	return stderrors.As(err, &target)
}
