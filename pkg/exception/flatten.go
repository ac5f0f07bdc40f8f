package exception

import (
	"fmt"
	"strings"
)

const (
	// Separator replaces every line break in a friendly message and joins
	// an exception to its inner exceptions.
	Separator = " ---> "

	// EndOfInnerExceptionStack closes the rendering of a single cause.
	EndOfInnerExceptionStack = "   --- End of inner exception stack trace ---"

	// AsyncStackTraceKey is the name under which a cached friendly stack
	// trace is exported, for example as a log attribute.
	AsyncStackTraceKey = "AsyncFriendlyStackTrace"

	// DefaultLineSeparator is the line separator assumed in messages and
	// native stack traces unless [Options] says otherwise.
	DefaultLineSeparator = "\n"

	aggregateFormat = "%s%s---> (Inner Exception #%d) %s%s%s"
	aggregateClose  = "<---"
)

// Options configures a [Flattener].
type Options struct {
	// LineSeparator is the line break found in messages and native stack
	// traces. Empty means [DefaultLineSeparator].
	LineSeparator string
}

// DefaultOptions returns the options used by the package-level functions.
func DefaultOptions() Options {
	return Options{LineSeparator: DefaultLineSeparator}
}

// Flattener renders exceptions as friendly messages. The zero value is not
// usable; create one with [NewFlattener]. A Flattener holds no mutable
// state and is safe for concurrent use.
type Flattener struct {
	lineSeparator string
}

// NewFlattener creates a Flattener with the given options.
func NewFlattener(opts Options) *Flattener {
	if opts.LineSeparator == "" {
		opts.LineSeparator = DefaultLineSeparator
	}
	return &Flattener{lineSeparator: opts.LineSeparator}
}

var defaultFlattener = NewFlattener(DefaultOptions())

// ToFriendlyMessage renders e with the default options.
// See [Flattener.ToFriendlyMessage].
func ToFriendlyMessage(e *Exception) string {
	return defaultFlattener.ToFriendlyMessage(e)
}

// GetStackTrace resolves the friendly stack trace of e with the default
// options. See [Flattener.GetStackTrace].
func GetStackTrace(e *Exception) string {
	return defaultFlattener.GetStackTrace(e)
}

// PrepareForAsyncSerialization caches friendly traces with the default
// options. See [Flattener.PrepareForAsyncSerialization].
func PrepareForAsyncSerialization(e *Exception) error {
	return defaultFlattener.PrepareForAsyncSerialization(e)
}

// path tracks the exceptions currently being rendered so that a cyclic
// graph terminates.
type path map[*Exception]struct{}

// ToFriendlyMessage renders e, its cause or aggregate chain and its stack
// trace as a single string. A nil exception yields "". Rendering never
// fails; missing data only shortens the result.
func (f *Flattener) ToFriendlyMessage(e *Exception) string {
	return f.friendly(e, path{})
}

// ToStringCore renders e in core form. With messageOnly set, the cause
// chain contributes only its messages and no stack trace is appended.
func (f *Flattener) ToStringCore(e *Exception, messageOnly bool) string {
	if e == nil {
		return ""
	}
	p := path{e: {}}
	return f.core(e, messageOnly, p)
}

// ToAggregateString renders e in aggregate form with the given components.
func (f *Flattener) ToAggregateString(e *Exception, components []*Exception) string {
	if e == nil {
		return ""
	}
	p := path{e: {}}
	return f.aggregate(e, components, p)
}

func (f *Flattener) friendly(e *Exception, p path) string {
	if e == nil {
		return ""
	}
	if _, seen := p[e]; seen {
		return f.base(e)
	}
	p[e] = struct{}{}
	defer delete(p, e)

	if e.kind == KindAggregate {
		return f.aggregate(e, e.components, p)
	}
	return f.core(e, false, p)
}

func (f *Flattener) base(e *Exception) string {
	message := strings.ReplaceAll(e.Message, f.lineSeparator, " ")
	if message == "" {
		return e.Type
	}
	return e.Type + ": " + message
}

func (f *Flattener) core(e *Exception, messageOnly bool, p path) string {
	s := f.base(e)

	if inner := e.Cause(); inner != nil {
		if messageOnly {
			seen := map[*Exception]struct{}{e: {}}
			for inner != nil {
				if _, ok := seen[inner]; ok {
					break
				}
				seen[inner] = struct{}{}
				s += Separator + inner.Message
				inner = inner.Cause()
			}
		} else {
			s += Separator + f.friendly(inner, p) + Separator + EndOfInnerExceptionStack
		}
	}

	if !messageOnly {
		if trace := f.GetStackTrace(e); trace != "" {
			s += Separator + trace
		}
	}
	return s
}

func (f *Flattener) aggregate(e *Exception, components []*Exception, p path) string {
	s := f.core(e, true, p)
	for i, c := range components {
		s = fmt.Sprintf(aggregateFormat, s, Separator, i, f.friendly(c, p), aggregateClose, Separator)
	}
	return s
}

// GetStackTrace resolves the friendly stack trace of e:
//
//   - a cached trace is returned unchanged
//   - otherwise a native trace is returned with its line separators
//     replaced by [Separator]
//   - otherwise a trace is synthesized from the captured frames
//
// The result is "" when e is nil or carries no trace information.
func (f *Flattener) GetStackTrace(e *Exception) string {
	if e == nil {
		return ""
	}
	if trace, ok := e.CachedStackTrace(); ok {
		return trace
	}
	if e.StackTrace != "" {
		trace := e.StackTrace
		for strings.HasSuffix(trace, f.lineSeparator) {
			trace = strings.TrimSuffix(trace, f.lineSeparator)
		}
		return strings.ReplaceAll(trace, f.lineSeparator, Separator)
	}
	return e.Frames.String()
}
