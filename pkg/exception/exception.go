package exception

import (
	"strings"
	"sync"
)

// Kind identifies which variant of [Exception] is populated.
type Kind int

const (
	// KindLeaf is an exception with no nested errors.
	KindLeaf Kind = iota

	// KindWithCause is an exception with exactly one cause.
	KindWithCause

	// KindAggregate is an exception made of an ordered list of component
	// exceptions.
	KindAggregate
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindWithCause:
		return "with_cause"
	case KindAggregate:
		return "aggregate"
	default:
		return "unknown"
	}
}

// Exception is the error value rendered by the flattener. Build one with
// [New], [Wrap] or [Aggregate], or convert an arbitrary error with
// [FromError].
//
// An Exception is read-only to the flattener except for its cached stack
// trace, which [Flattener.PrepareForAsyncSerialization] fills in once.
// The cache is safe for concurrent use; the exported fields are not and
// should be set before the value is shared.
type Exception struct {
	// Type is the type name printed first in the friendly message.
	Type string

	// Message is the human-readable message. May be empty.
	Message string

	// StackTrace is the native stack trace, one frame per line.
	StackTrace string

	// Frames are captured frames used to synthesize a trace when
	// StackTrace is empty.
	Frames Stack

	kind       Kind
	cause      *Exception
	components []*Exception

	mu     sync.Mutex
	cached *string
}

// New creates a leaf exception.
//
// Example:
//
//	e := exception.New("io.ErrUnexpectedEOF", "unexpected EOF")
func New(typeName, message string) *Exception {
	return &Exception{
		Type:    typeName,
		Message: message,
		kind:    KindLeaf,
	}
}

// Wrap creates an exception whose single cause is cause. A nil cause
// yields a leaf.
func Wrap(cause *Exception, typeName, message string) *Exception {
	e := New(typeName, message)
	if cause != nil {
		e.kind = KindWithCause
		e.cause = cause
	}
	return e
}

// Aggregate creates an exception made of the given components, in order.
// Nil components are dropped. An aggregate with no components is still an
// aggregate.
func Aggregate(typeName, message string, components ...*Exception) *Exception {
	e := New(typeName, message)
	e.kind = KindAggregate
	e.components = make([]*Exception, 0, len(components))
	for _, c := range components {
		if c != nil {
			e.components = append(e.components, c)
		}
	}
	return e
}

// WithStackTrace sets the native stack trace and returns e.
func (e *Exception) WithStackTrace(trace string) *Exception {
	e.StackTrace = trace
	return e
}

// WithFrames sets the captured frames and returns e.
func (e *Exception) WithFrames(frames Stack) *Exception {
	e.Frames = frames
	return e
}

// Kind reports the populated variant.
func (e *Exception) Kind() Kind {
	return e.kind
}

// Cause returns the single cause, or nil unless the kind is
// [KindWithCause].
func (e *Exception) Cause() *Exception {
	if e.kind != KindWithCause {
		return nil
	}
	return e.cause
}

// Components returns a copy of the component list, or nil unless the kind
// is [KindAggregate].
func (e *Exception) Components() []*Exception {
	if e.kind != KindAggregate {
		return nil
	}
	out := make([]*Exception, len(e.components))
	copy(out, e.components)
	return out
}

// CachedStackTrace returns the cached friendly stack trace and whether one
// has been stored. An empty cached trace still counts as cached.
func (e *Exception) CachedStackTrace() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cached == nil {
		return "", false
	}
	return *e.cached, true
}

// cacheStackTrace stores trace unless a trace is already cached.
func (e *Exception) cacheStackTrace(trace string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cached == nil {
		e.cached = &trace
	}
}

// Error implements the error interface. The text is the base form
// followed by the cause's text, or by the components' texts in brackets.
func (e *Exception) Error() string {
	s := e.Type
	if e.Message != "" {
		s += ": " + e.Message
	}
	switch e.kind {
	case KindWithCause:
		s += ": " + e.cause.Error()
	case KindAggregate:
		parts := make([]string, len(e.components))
		for i, c := range e.components {
			parts[i] = c.Error()
		}
		s += ": [" + strings.Join(parts, "; ") + "]"
	}
	return s
}

// Unwrap returns the cause so errors.Is and errors.As can walk the chain.
// Aggregates are exposed through [Exception.UnwrapAll] instead, because a
// type may only declare one Unwrap method.
func (e *Exception) Unwrap() error {
	if c := e.Cause(); c != nil {
		return c
	}
	return nil
}

// UnwrapAll returns the components of an aggregate as errors.
func (e *Exception) UnwrapAll() []error {
	if e.kind != KindAggregate {
		return nil
	}
	out := make([]error, len(e.components))
	for i, c := range e.components {
		out[i] = c
	}
	return out
}
