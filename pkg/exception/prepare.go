package exception

import (
	sserr "github.com/StricklySoft/stricklysoft-enrichers/pkg/errors"
)

// PrepareForAsyncSerialization stores the friendly stack trace of e and of
// every exception nested in it, so that the trace survives serialization
// of the exception graph. Exceptions that already carry a cached trace or
// a native trace are left alone, and so are their nested exceptions.
//
// Calling it again is a no-op. Cyclic graphs are visited once per
// exception. A nil exception returns a [sserr.CodeValidationRequired]
// error.
func (f *Flattener) PrepareForAsyncSerialization(e *Exception) error {
	if e == nil {
		return sserr.InvalidArgument("exception")
	}
	f.prepare(e, make(map[*Exception]struct{}))
	return nil
}

func (f *Flattener) prepare(e *Exception, visited map[*Exception]struct{}) {
	if _, ok := visited[e]; ok {
		return
	}
	visited[e] = struct{}{}

	if _, ok := e.CachedStackTrace(); ok || e.StackTrace != "" {
		return
	}
	e.cacheStackTrace(f.GetStackTrace(e))

	switch e.kind {
	case KindAggregate:
		for _, c := range e.components {
			if c != nil {
				f.prepare(c, visited)
			}
		}
	case KindWithCause:
		if e.cause != nil {
			f.prepare(e.cause, visited)
		}
	}
}
