package errors

import (
	"errors"
)

// AsError attempts to convert an error to an *Error by traversing the
// error chain with errors.As.
//
// Example:
//
//	if e, ok := errors.AsError(err); ok {
//	    logger.Warn("enrichment degraded", "code", e.Code)
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsValidation checks if the error is a validation error (VAL_xxx).
func IsValidation(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code.Category() == "VAL"
}
