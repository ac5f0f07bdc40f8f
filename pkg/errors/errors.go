// Package errors provides the structured error type used by every failure
// the enrichers module reports. Errors carry a machine-readable code, a
// human-readable message, an optional cause, and optional structured
// details.
//
// # Error Categories
//
// Only two categories are in use:
//
//   - Validation errors (VAL_xxx): a caller passed an invalid argument or a
//     configuration value failed validation
//   - Internal errors (INT_xxx): configuration could not be read or parsed,
//     or an unexpected failure occurred
//
// # Rendering
//
// [*Error] implements TypeName and ExceptionMessage, so the exception
// flattener renders platform errors as "<CODE>: <message>" followed by
// their cause chain rather than as a Go type name.
//
// # Usage
//
// Create a new error:
//
//	err := errors.New(errors.CodeValidationRequired, "exception must not be nil")
//
// Wrap an existing error:
//
//	err := errors.Wrapf(err, errors.CodeInternalConfiguration, "failed to read %q", path)
//
// Check the category:
//
//	if errors.IsValidation(err) {
//	    // caller bug
//	}
package errors
