package errors

import (
	"fmt"
)

// New creates a new Error with the specified code and message.
//
// Example:
//
//	err := errors.New(errors.CodeValidation, "property name must not be empty")
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with the specified code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a code and message. If err is nil,
// Wrap returns nil.
//
// Example:
//
//	data, err := os.ReadFile(path)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeInternalConfiguration, "failed to read config")
//	}
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with a formatted message. If err is nil,
// Wrapf returns nil.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// Validation creates a new validation error.
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// InvalidArgument creates a validation error reporting that the named
// argument is missing.
//
// Example:
//
//	return errors.InvalidArgument("exception")
func InvalidArgument(name string) *Error {
	return Newf(CodeValidationRequired, "argument %q must not be nil", name).
		WithDetail("argument", name)
}
