package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrNotFound, "path does not exist")

	assert.Equal(t, ErrNotFound, err.Code)
	assert.Equal(t, "path does not exist", err.Message)
	assert.Equal(t, "[NOT_FOUND] path does not exist", err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := Wrap(inner, ErrUnreachable, "ssh host down")

	assert.Equal(t, ErrUnreachable, err.Code)
	assert.Equal(t, "[UNREACHABLE] ssh host down: connection refused", err.Error())
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrUnreachable, "should be nil"))
	assert.Nil(t, Wrapf(nil, ErrUnreachable, "should be %s", "nil"))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := Newf(ErrTransferFailure, "rsync exited %d", 23)
	target := New(ErrTransferFailure, "different message")

	assert.True(t, errors.Is(err, target))
	assert.False(t, errors.Is(err, New(ErrUnreachable, "other code")))
}

func TestIsErrorCode(t *testing.T) {
	err := Wrapf(fmt.Errorf("boom"), ErrStagingCopy, "copying %s", "CLAUDE.md")

	assert.True(t, IsErrorCode(err, ErrStagingCopy))
	assert.False(t, IsErrorCode(err, ErrNotFound))
	assert.False(t, IsErrorCode(fmt.Errorf("plain"), ErrStagingCopy))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrDecodeFailure, GetErrorCode(New(ErrDecodeFailure, "binary")))
	assert.Equal(t, ErrUnknown, GetErrorCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrTransferFailure, "deploy failed").
		WithDetail("environment", "my-container").
		WithDetail("path", "agents")

	assert.Equal(t, "my-container", err.Details["environment"])
	assert.Equal(t, "agents", err.Details["path"])
}
