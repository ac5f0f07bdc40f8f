package exception

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/stricklysoft-enrichers/internal/testutil"
	sserr "github.com/StricklySoft/stricklysoft-enrichers/pkg/errors"
)

var testFrames = Stack{{Function: "svc.Handle", File: "/svc/handle.go", Line: 7}}

func TestPrepareForAsyncSerialization_Nil(t *testing.T) {
	t.Parallel()
	err := PrepareForAsyncSerialization(nil)
	testutil.RequireErrorCode(t, err, sserr.CodeValidationRequired)
	assert.True(t, sserr.IsValidation(err))
}

func TestPrepareForAsyncSerialization_CachesChain(t *testing.T) {
	t.Parallel()
	c := New("C", "c").WithFrames(testFrames)
	b := Wrap(c, "B", "b")
	a := Wrap(b, "A", "a").WithFrames(testFrames)

	require.NoError(t, PrepareForAsyncSerialization(a))

	for _, e := range []*Exception{a, b, c} {
		_, ok := e.CachedStackTrace()
		assert.True(t, ok, "%s should have a cached trace", e.Type)
	}
	trace, _ := a.CachedStackTrace()
	assert.Equal(t, "   at svc.Handle in /svc/handle.go:line 7", trace)
	trace, _ = b.CachedStackTrace()
	assert.Equal(t, "", trace, "an exception without frames caches an empty trace")
}

func TestPrepareForAsyncSerialization_Idempotent(t *testing.T) {
	t.Parallel()
	e := New("T", "").WithFrames(testFrames)
	require.NoError(t, PrepareForAsyncSerialization(e))
	first, ok := e.CachedStackTrace()
	require.True(t, ok)
	before := ToFriendlyMessage(e)

	e.Frames = Stack{{Function: "other.Func"}}
	require.NoError(t, PrepareForAsyncSerialization(e))

	second, _ := e.CachedStackTrace()
	assert.Equal(t, first, second, "second call must not recompute the trace")
	assert.Equal(t, before, ToFriendlyMessage(e))
}

func TestPrepareForAsyncSerialization_NativeTraceSkipsSubtree(t *testing.T) {
	t.Parallel()
	inner := New("Inner", "").WithFrames(testFrames)
	outer := Wrap(inner, "Outer", "").WithStackTrace("at outer")

	require.NoError(t, PrepareForAsyncSerialization(outer))

	_, ok := outer.CachedStackTrace()
	assert.False(t, ok, "an exception with a native trace is left alone")
	_, ok = inner.CachedStackTrace()
	assert.False(t, ok, "nested exceptions of a skipped exception are not visited")
}

func TestPrepareForAsyncSerialization_Aggregate(t *testing.T) {
	t.Parallel()
	x := New("X", "").WithFrames(testFrames)
	y := Wrap(New("Z", ""), "Y", "")
	agg := Aggregate("Agg", "", x, y)

	require.NoError(t, PrepareForAsyncSerialization(agg))

	for _, e := range []*Exception{agg, x, y, y.Cause()} {
		_, ok := e.CachedStackTrace()
		assert.True(t, ok, "%s should have a cached trace", e.Type)
	}
}

func TestPrepareForAsyncSerialization_Cycle(t *testing.T) {
	t.Parallel()
	a := New("A", "")
	b := Wrap(a, "B", "")
	a.kind = KindWithCause
	a.cause = b

	require.NoError(t, PrepareForAsyncSerialization(a))

	_, okA := a.CachedStackTrace()
	_, okB := b.CachedStackTrace()
	assert.True(t, okA)
	assert.True(t, okB)
}

func TestPrepareForAsyncSerialization_SharedComponent(t *testing.T) {
	t.Parallel()
	shared := New("Shared", "").WithFrames(testFrames)
	agg := Aggregate("Agg", "", shared, Wrap(shared, "W", ""))

	require.NoError(t, PrepareForAsyncSerialization(agg))

	trace, ok := shared.CachedStackTrace()
	require.True(t, ok)
	assert.Equal(t, testFrames.String(), trace)
}
