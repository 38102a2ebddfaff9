package core

import (
	"net/http"

	"github.com/pkg/errors"
)

// ErrAuthMissing is returned when an operation needs a logged in user and there is none.
var ErrAuthMissing = errors.New("please login to continue")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func NewAPIError(status int, msg string) error {
	if msg == "" {
		msg = "API request failed"
	}
	return &APIError{Status: status, Message: msg}
}

func (err APIError) Error() string {
	return err.Message
}

func IsAuthMissing(err error) bool {
	cause := errors.Cause(err)
	if cause == ErrAuthMissing {
		return true
	}
	apiErr, ok := cause.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

func IsAPIError(err error) bool {
	_, ok := errors.Cause(err).(*APIError)
	return ok
}
