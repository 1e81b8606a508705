package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned by Grid accessors for coordinates off the board.
	ErrOutOfBounds = errors.New("core: coordinate out of bounds")

	// ErrPrecondition marks programming errors: bad arguments, malformed loader
	// output. The operation is aborted before any mutation.
	ErrPrecondition = errors.New("core: precondition violation")

	// ErrInvariant marks an engine bug detected by a post-condition check.
	ErrInvariant = errors.New("core: invariant failure")
)

// PreconditionError contains details about a rejected call.
type PreconditionError struct {
	Code    string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition [%s] %s", e.Code, e.Message)
}

// Is makes errors.Is(err, ErrPrecondition) match.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// InvariantError contains details about a failed post-condition.
type InvariantError struct {
	Code    string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant [%s] %s", e.Code, e.Message)
}

// Is makes errors.Is(err, ErrInvariant) match.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

// ValidationError contains details about a level that failed validation.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func preconditionf(code, format string, args ...any) error {
	return &PreconditionError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func invariantf(code, format string, args ...any) error {
	return &InvariantError{Code: code, Message: fmt.Sprintf(format, args...)}
}
