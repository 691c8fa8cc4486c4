// Package errors provides standardized error values for rowvec
package errors

import (
	"fmt"
	"runtime"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryBounds     ErrorCategory = "BOUNDS"
	CategoryValidation ErrorCategory = "VALIDATION"
	CategoryInvariant  ErrorCategory = "INVARIANT"
	CategoryTrace      ErrorCategory = "TRACE"
)

// StandardError provides a consistent error format
type StandardError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// Is reports a match on category and code so callers can use errors.Is
// against the sentinel-like values built by the constructors below.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// NewStandardError creates a new standardized error
func NewStandardError(category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	return newAt(2, category, code, message, context)
}

func newAt(skip int, category ErrorCategory, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(skip)
	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Codes, usable as errors.Is targets.
var (
	ErrIndexOutOfBounds   = &StandardError{Category: CategoryBounds, Code: "INDEX_OUT_OF_BOUNDS"}
	ErrInvalidRange       = &StandardError{Category: CategoryBounds, Code: "INVALID_RANGE"}
	ErrInvalidWidth       = &StandardError{Category: CategoryValidation, Code: "INVALID_WIDTH"}
	ErrInvariant          = &StandardError{Category: CategoryInvariant, Code: "INVARIANT_VIOLATION"}
	ErrUnsupportedVersion = &StandardError{Category: CategoryTrace, Code: "UNSUPPORTED_VERSION"}
	ErrMalformedTrace     = &StandardError{Category: CategoryTrace, Code: "MALFORMED_TRACE"}
)

// Common error constructors. The caller recorded is the function that
// detected the problem, not the constructor.

func IndexOutOfBounds(operation string, index, length int) *StandardError {
	return newAt(2, CategoryBounds, "INDEX_OUT_OF_BOUNDS",
		fmt.Sprintf("%s: index %d out of bounds for length %d", operation, index, length),
		map[string]interface{}{"operation": operation, "index": index, "length": length})
}

func InvalidRange(operation string, from, to, length int) *StandardError {
	return newAt(2, CategoryBounds, "INVALID_RANGE",
		fmt.Sprintf("%s: range [%d, %d) invalid for length %d", operation, from, to, length),
		map[string]interface{}{"operation": operation, "from": from, "to": to, "length": length})
}

func InvalidWidth(width int) *StandardError {
	return newAt(2, CategoryValidation, "INVALID_WIDTH",
		fmt.Sprintf("row width must be positive, got %d", width),
		map[string]interface{}{"width": width})
}

func InvariantViolation(details string, context map[string]interface{}) *StandardError {
	return newAt(2, CategoryInvariant, "INVARIANT_VIOLATION",
		"invariant violated: "+details, context)
}

func UnsupportedVersion(version, constraint string) *StandardError {
	return newAt(2, CategoryTrace, "UNSUPPORTED_VERSION",
		fmt.Sprintf("trace version %s does not satisfy %s", version, constraint),
		map[string]interface{}{"version": version, "constraint": constraint})
}

func MalformedTrace(line int, details string) *StandardError {
	return newAt(2, CategoryTrace, "MALFORMED_TRACE",
		fmt.Sprintf("line %d: %s", line, details),
		map[string]interface{}{"line": line})
}
