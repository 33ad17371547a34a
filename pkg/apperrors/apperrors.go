// pkg/apperrors/apperrors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Code identifies the error category.
type Code string

const (
	// CodeValidation indicates bad caller input, recoverable locally.
	CodeValidation Code = "VALIDATION"

	// CodeUnauthenticated indicates no authenticated user for the call.
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// CodeForbidden indicates a role or ownership violation.
	CodeForbidden Code = "FORBIDDEN"

	// CodeNotFound indicates a missing team, devotional or message.
	CodeNotFound Code = "NOT_FOUND"

	// CodeConflict indicates a collision resolved internally (join codes).
	CodeConflict Code = "CONFLICT"

	// CodeTransientIO indicates a network/store failure on a one-shot op.
	CodeTransientIO Code = "TRANSIENT_IO"

	// CodePartialFailure indicates a best-effort step failed but the
	// overall operation still succeeded.
	CodePartialFailure Code = "PARTIAL_FAILURE"
)

// Reasons refine CodeForbidden.
const (
	ReasonNotLeader     = "NOT_LEADER"
	ReasonAlreadyLeader = "ALREADY_LEADER"
	ReasonAlreadyMember = "ALREADY_MEMBER"
	ReasonNotAMember    = "NOT_A_MEMBER"
)

// Error is the domain error type carried from the registries and stores up
// to the HTTP shell unchanged.
type Error struct {
	Code    Code
	Reason  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s/%s: %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on code (and reason, when the target has one).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func Unauthenticated(msg string) *Error {
	if msg == "" {
		msg = "user not authenticated"
	}
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

func Forbidden(reason, msg string) *Error {
	return &Error{Code: CodeForbidden, Reason: reason, Message: msg}
}

func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

func TransientIO(op string, err error) *Error {
	return &Error{Code: CodeTransientIO, Message: op + " failed", Err: err}
}

func PartialFailure(msg string, err error) *Error {
	return &Error{Code: CodePartialFailure, Message: msg, Err: err}
}

// CodeOf returns the code of err, or "" when err is not a domain error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ReasonOf returns the forbidden reason of err, if any.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
