package errors

import (
	"fmt"
	"maps"
)

// Error represents a structured error with a code, message, and optional
// cause. Fields are not modified after creation; the With* methods return
// copies.
type Error struct {
	// Code is the machine-readable error code (e.g., "VAL_002").
	Code Code

	// Message is the human-readable error message.
	Message string

	// Cause is the underlying error, if any. Use Unwrap() to access it
	// through errors.Is/As.
	Cause error

	// Details contains additional structured data about the error, such
	// as the offending field name.
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of this error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// TypeName reports the error code as the type name shown by the
// exception flattener.
func (e *Error) TypeName() string {
	return string(e.Code)
}

// ExceptionMessage reports the message without the cause chain, which the
// exception flattener renders separately.
func (e *Error) ExceptionMessage() string {
	return e.Message
}

// WithDetails returns a new Error with the specified details merged in.
// The original error is not modified.
func (e *Error) WithDetails(details map[string]any) *Error {
	newDetails := make(map[string]any, len(e.Details)+len(details))
	maps.Copy(newDetails, e.Details)
	maps.Copy(newDetails, details)
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Details: newDetails,
	}
}

// WithDetail returns a new Error with a single detail key-value pair added.
// The original error is not modified.
func (e *Error) WithDetail(key string, value any) *Error {
	return e.WithDetails(map[string]any{key: value})
}

// Format implements fmt.Formatter. Use %v for standard output and %+v for
// detailed output including details and the cause chain.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "Error{Code: %q, Message: %q", e.Code, e.Message)
			if len(e.Details) > 0 {
				fmt.Fprintf(s, ", Details: %v", e.Details)
			}
			if e.Cause != nil {
				fmt.Fprintf(s, ", Cause: %+v", e.Cause)
			}
			fmt.Fprint(s, "}")
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}
