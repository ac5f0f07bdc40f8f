package exception

import (
	"runtime"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// maxCaptureDepth bounds the number of frames [Capture] records.
const maxCaptureDepth = 64

// Frame is a single resolved call site.
type Frame struct {
	Function string // fully-qualified function name
	File     string // absolute file path, empty when unknown
	Line     int    // line number, zero when unknown
}

// String renders the frame as "   at <Function> in <File>:line <Line>".
// The location is omitted when the file is unknown.
func (f Frame) String() string {
	var sb strings.Builder
	sb.WriteString("   at ")
	sb.WriteString(f.Function)
	if f.File != "" {
		sb.WriteString(" in ")
		sb.WriteString(f.File)
		sb.WriteString(":line ")
		sb.WriteString(strconv.Itoa(f.Line))
	}
	return sb.String()
}

// Stack is a list of frames, most recent call first.
type Stack []Frame

// String renders the frames joined by the " ---> " marker. Frames of the
// Go runtime itself (runtime.main, runtime.goexit, ...) carry no
// information about the failure and are dropped.
func (s Stack) String() string {
	lines := make([]string, 0, len(s))
	for _, f := range s {
		if isRuntimeFrame(f.Function) {
			continue
		}
		lines = append(lines, f.String())
	}
	return strings.Join(lines, Separator)
}

func isRuntimeFrame(function string) bool {
	return strings.HasPrefix(function, "runtime.")
}

// Capture records the calling goroutine's stack. skip is the number of
// additional frames to omit; 0 starts at the caller of Capture.
//
// Example:
//
//	e := exception.New("ErrTimeout", "deadline exceeded").WithFrames(exception.Capture(0))
func Capture(skip int) Stack {
	pcs := make([]uintptr, maxCaptureDepth)
	// +2 skips runtime.Callers and Capture.
	n := runtime.Callers(skip+2, pcs)
	return StackFromPCs(pcs[:n])
}

// StackFromPCs resolves program counters as returned by runtime.Callers.
// Inlined calls are expanded into their own frames.
func StackFromPCs(pcs []uintptr) Stack {
	if len(pcs) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs)
	out := make(Stack, 0, len(pcs))
	for {
		fr, more := frames.Next()
		if fr.Function != "" || fr.File != "" {
			out = append(out, Frame{
				Function: fr.Function,
				File:     fr.File,
				Line:     fr.Line,
			})
		}
		if !more {
			break
		}
	}
	return out
}

// stackFromPkgErrors converts the frames recorded by github.com/pkg/errors.
// Its Frame values are the raw runtime.Callers program counters.
func stackFromPkgErrors(st pkgerrors.StackTrace) Stack {
	pcs := make([]uintptr, len(st))
	for i, f := range st {
		pcs[i] = uintptr(f)
	}
	return StackFromPCs(pcs)
}
