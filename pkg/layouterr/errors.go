// Package layouterr provides the structured error type returned by every
// operator and by [layout.Layout] itself.
//
// # Error Codes
//
// Each error carries a machine-readable [Code] drawn from a fixed
// taxonomy (see the [Code] constants) describing the kind of failure, not
// a distinct Go type per failure mode:
//
//	err := layouterr.New(layouterr.InvalidConfig, "negative weight: %v", w)
//	if layouterr.Is(err, layouterr.InvalidConfig) {
//	    // handle
//	}
//
// Wrap an underlying error to preserve its chain for errors.Is/As:
//
//	err := layouterr.Wrap(layouterr.IllDefinedObjective, solveErr, "quadratic program")
package layouterr

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

// Error codes for the layout engine's error taxonomy (spec §7).
const (
	// InvalidGraph is returned when building the sugi-graph finds a link
	// that does not strictly increase layer. [dag.DAG.Validate] and the
	// dag builders report cycles, self-loops and unknown node references
	// with their own sentinel errors.
	InvalidGraph Code = "INVALID_GRAPH"

	// InvalidConfig covers a negative weight/size, zero width for every
	// node, an argument passed to a zero-arg constructor, or conflicting
	// rank/group constraints.
	InvalidConfig Code = "INVALID_CONFIG"

	// GraphTooLarge is returned when the opt-decross size gate is
	// exceeded.
	GraphTooLarge Code = "GRAPH_TOO_LARGE"

	// IllDefinedConstraints is returned when the simplex layering LP is
	// infeasible under user rank/group constraints.
	IllDefinedConstraints Code = "ILL_DEFINED_CONSTRAINTS"

	// IllDefinedObjective is returned when a quadratic program's
	// objective matrix is not positive definite.
	IllDefinedObjective Code = "ILL_DEFINED_OBJECTIVE"

	// InvalidCoordAssignment is returned when the non-overlap invariant
	// is violated after coordinate assignment (an internal invariant
	// violation).
	InvalidCoordAssignment Code = "INVALID_COORD_ASSIGNMENT"

	// ZeroHeight is returned for degenerate total-height sizing.
	ZeroHeight Code = "ZERO_HEIGHT"

	// ZeroWidth is returned when no node has positive width.
	ZeroWidth Code = "ZERO_WIDTH"
)

// Error is a structured error with a code and optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, for errors.Is/As compatibility.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error with the given code, wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err has the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from err, or "" if err is not (and
// does not wrap) an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
