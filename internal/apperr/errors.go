// Package apperr defines the error kinds shared by the source, contact and
// presentation layers.
package apperr

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrNotFound = errors.New("not found")

// FetchError reports a failed project collection fetch: a non-success HTTP
// status, a payload with a false or missing success flag, a transport failure
// or an unreadable body.
type FetchError struct {
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("fetch: %s (status %d): %v", e.Message, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("fetch: %s: %v", e.Message, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetch: %s (status %d)", e.Message, e.Status)
	}
	return "fetch: " + e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// SubmissionError reports a failed contact notification POST.
type SubmissionError struct {
	Status int
	Err    error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submit: %v", e.Err)
	}
	return fmt.Sprintf("submit: unexpected status %d", e.Status)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ValidationError reports missing required contact fields.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Fields.Error()
}

func (e *ValidationError) Unwrap() error { return e.Fields }

// IsFetch reports whether err is, or wraps, a *FetchError.
func IsFetch(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsSubmission reports whether err is, or wraps, a *SubmissionError.
func IsSubmission(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
