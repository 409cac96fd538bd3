package errors

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverErrorUnwrap(t *testing.T) {
	err := NewDriverError(syscall.ENOENT)
	assert.True(t, errors.Is(err, syscall.ENOENT))
}

func TestDriverErrorWithMessage(t *testing.T) {
	err := NewDriverErrorWithMessage(syscall.EIO, "disk read failed")
	assert.Contains(t, err.Error(), "disk read failed")
}

func TestDiskoErrorWithMessage(t *testing.T) {
	wrapped := ErrGeometryInvalid.WithMessage("bad BPB")
	require.Error(t, wrapped)
	assert.Contains(t, wrapped.Error(), "bad BPB")
	assert.True(t, errors.Is(wrapped, ErrGeometryInvalid))
}

func TestDiskoErrorWrapError(t *testing.T) {
	inner := errors.New("underlying failure")
	wrapped := ErrEntrySetCorrupt.WrapError(inner)
	assert.True(t, errors.Is(wrapped, ErrEntrySetCorrupt))
	assert.True(t, errors.Is(wrapped, inner))
}
