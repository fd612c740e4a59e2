// Package errors defines the failure taxonomy shared by the jobpilot
// components. Every error carries the kind of failure, the operation it came
// from and a stack captured at construction.
package errors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	// ErrTypeTransport covers network failures and unreadable response bodies.
	ErrTypeTransport ErrorType = "TRANSPORT"
	// ErrTypeBackend covers non-2xx responses and malformed 2xx bodies.
	ErrTypeBackend ErrorType = "BACKEND"
	// ErrTypeValidation covers local precondition failures. No request is sent.
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeSuperseded marks a response that arrived after a newer request of
	// the same kind was issued. Its result was discarded.
	ErrTypeSuperseded ErrorType = "SUPERSEDED"
)

// Op names the backend operation an error belongs to.
type Op string

const (
	OpSaveProfile      Op = "save_profile"
	OpSearchJobs       Op = "search_jobs"
	OpQueueApplication Op = "queue_application"
	OpListApplications Op = "list_applications"
)

type DomainError struct {
	Type       ErrorType
	Op         Op
	Message    string
	StatusCode int
	Err        error
	Stack      []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, op Op, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Op:      op,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Transport(op Op, message string, err error) *DomainError {
	return New(ErrTypeTransport, op, message, err)
}

// Backend records a failed response. A 2xx statusCode means the status was
// fine but the body could not be used.
func Backend(op Op, statusCode int, message string, err error) *DomainError {
	e := New(ErrTypeBackend, op, message, err)
	e.StatusCode = statusCode
	return e
}

func Validation(op Op, message string, err error) *DomainError {
	return New(ErrTypeValidation, op, message, err)
}

func Superseded(op Op) *DomainError {
	return New(ErrTypeSuperseded, op, "response superseded by a newer request", nil)
}

// MissingProfile is returned when an application is queued before any profile
// has been saved.
func MissingProfile(err error) *DomainError {
	return Validation(OpQueueApplication, missingProfileMessage, err)
}

const missingProfileMessage = "no active profile email"

// As returns the DomainError in err's chain, if any.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if goerrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// TypeOf returns the kind of err, or an empty ErrorType if err is not a
// DomainError.
func TypeOf(err error) ErrorType {
	if de, ok := As(err); ok {
		return de.Type
	}
	return ""
}

// IsType reports whether err is a DomainError of the given kind.
func IsType(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}

// IsSuperseded reports whether err only signals a discarded stale response.
func IsSuperseded(err error) bool {
	return IsType(err, ErrTypeSuperseded)
}

// IsSaveFailed reports whether err is a failed profile save.
func IsSaveFailed(err error) bool {
	return isRemoteFailure(err, OpSaveProfile)
}

// IsQueueFailed reports whether err is a failed application submission.
func IsQueueFailed(err error) bool {
	return isRemoteFailure(err, OpQueueApplication)
}

// IsMissingProfile reports whether err is the missing-profile precondition.
func IsMissingProfile(err error) bool {
	de, ok := As(err)
	return ok && de.Type == ErrTypeValidation && de.Message == missingProfileMessage
}

func isRemoteFailure(err error, op Op) bool {
	de, ok := As(err)
	if !ok || de.Op != op {
		return false
	}
	return de.Type == ErrTypeTransport || de.Type == ErrTypeBackend
}
