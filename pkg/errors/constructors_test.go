package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	err := New(CodeValidation, "bad value")
	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, "bad value", err.Message)
	assert.Nil(t, err.Cause)
}

func TestNewf(t *testing.T) {
	t.Parallel()
	err := Newf(CodeValidationRange, "max depth %d out of range", -1)
	assert.Equal(t, "max depth -1 out of range", err.Message)
}

func TestWrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("no such file")
	err := Wrap(cause, CodeInternalConfiguration, "read failed")
	require.NotNil(t, err)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, CodeInternalConfiguration, err.Code)

	assert.Nil(t, Wrap(nil, CodeInternalConfiguration, "unused"), "Wrap(nil) should return nil")
}

func TestWrapf(t *testing.T) {
	t.Parallel()
	cause := errors.New("bad yaml")
	err := Wrapf(cause, CodeInternalConfiguration, "parse %q", "cfg.yaml")
	require.NotNil(t, err)
	assert.Equal(t, `parse "cfg.yaml"`, err.Message)

	assert.Nil(t, Wrapf(nil, CodeInternalConfiguration, "unused %d", 1))
}

func TestInvalidArgument(t *testing.T) {
	t.Parallel()
	err := InvalidArgument("exception")
	assert.Equal(t, CodeValidationRequired, err.Code)
	assert.Equal(t, `argument "exception" must not be nil`, err.Message)
	assert.Equal(t, "exception", err.Details["argument"])
}
