package exception

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// DefaultMaxDepth bounds how many levels of nested errors [FromError]
// converts.
const DefaultMaxDepth = 64

// Interfaces recognized by FromError. Errors may implement any subset.
type (
	typeNamer interface {
		TypeName() string
	}
	exceptionMessager interface {
		ExceptionMessage() string
	}
	nativeTracer interface {
		StackTrace() string
	}
	pkgErrorsTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	callerser interface {
		Callers() []uintptr
	}
	joinedErrors interface {
		Unwrap() []error
	}
	multiError interface {
		WrappedErrors() []error
	}
)

// FromError converts err into an [Exception] using [DefaultMaxDepth].
// See [FromErrorDepth].
func FromError(err error) *Exception {
	return FromErrorDepth(err, DefaultMaxDepth)
}

// FromErrorDepth converts err into an [Exception], following at most
// maxDepth levels of nesting (values below 1 mean [DefaultMaxDepth]).
//
// Conversion rules:
//
//   - nil converts to nil and an *Exception is returned as-is
//   - the type name is TypeName() when implemented, otherwise %T
//   - Unwrap() []error and WrappedErrors() []error (go-multierror) make
//     an aggregate; Unwrap() error makes a cause
//   - the message is ExceptionMessage() when implemented, otherwise
//     Error() without the trailing ": <cause>" that %w wrapping adds
//   - StackTrace() string supplies a native trace; frames come from
//     github.com/pkg/errors or a Callers() []uintptr method
//
// A wrapper whose text equals its cause's text (pkg/errors.WithStack, for
// example) adds only metadata, so it is merged into its cause; at most
// maxDepth wrappers are merged at each level. When the cause is itself an
// *Exception it is returned as-is and the wrapper's trace is dropped,
// since a shared Exception is never modified by conversion.
func FromErrorDepth(err error, maxDepth int) *Exception {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return convert(err, maxDepth)
}

func convert(err error, depth int) *Exception {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Exception); ok {
		return e
	}

	var trace string
	var frames Stack
	for hop := 0; hop < depth; hop++ {
		if trace == "" {
			trace = nativeTrace(err)
		}
		if frames == nil {
			frames = framesOf(err)
		}
		if componentsOf(err) != nil {
			break
		}
		inner := errors.Unwrap(err)
		if inner == nil || inner.Error() != err.Error() {
			break
		}
		if e, ok := inner.(*Exception); ok {
			return e
		}
		err = inner
	}

	e := New(typeName(err), "")
	e.StackTrace = trace
	e.Frames = frames

	if components := componentsOf(err); components != nil {
		e.kind = KindAggregate
		e.components = make([]*Exception, 0, len(components))
		if depth > 1 {
			for _, c := range components {
				if ce := convert(c, depth-1); ce != nil {
					e.components = append(e.components, ce)
				}
			}
		}
		e.Message = aggregateMessage(err, components)
		return e
	}

	inner := errors.Unwrap(err)
	if inner != nil && depth > 1 {
		e.kind = KindWithCause
		e.cause = convert(inner, depth-1)
	}
	e.Message = messageOf(err, inner)
	return e
}

func typeName(err error) string {
	if tn, ok := err.(typeNamer); ok {
		if name := tn.TypeName(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("%T", err)
}

func messageOf(err, inner error) string {
	if em, ok := err.(exceptionMessager); ok {
		return em.ExceptionMessage()
	}
	text := err.Error()
	if inner != nil {
		text = strings.TrimSuffix(text, ": "+inner.Error())
	}
	return text
}

// aggregateMessage keeps a summary line such as go-multierror's
// "2 errors occurred" and drops text that merely repeats the components,
// as errors.Join produces.
func aggregateMessage(err error, components []error) string {
	if em, ok := err.(exceptionMessager); ok {
		return em.ExceptionMessage()
	}
	text := err.Error()
	if len(components) > 0 && components[0] != nil && strings.HasPrefix(text, components[0].Error()) {
		return ""
	}
	first, _, _ := strings.Cut(text, "\n")
	return strings.TrimSuffix(strings.TrimSpace(first), ":")
}

func componentsOf(err error) []error {
	switch v := err.(type) {
	case multiError:
		return v.WrappedErrors()
	case joinedErrors:
		return v.Unwrap()
	}
	return nil
}

func nativeTrace(err error) string {
	if t, ok := err.(nativeTracer); ok {
		return t.StackTrace()
	}
	return ""
}

func framesOf(err error) Stack {
	switch v := err.(type) {
	case pkgErrorsTracer:
		return stackFromPkgErrors(v.StackTrace())
	case callerser:
		return StackFromPCs(v.Callers())
	}
	return nil
}
