package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderError_ErrorString(t *testing.T) {
	e := New(CategoryConfig, "missing owner")
	require.Equal(t, "config: missing owner", e.Error())

	wrapped := Wrap(stderrors.New("dial tcp: timeout"), CategoryNetwork, "GitHub unreachable")
	require.Equal(t, "network: GitHub unreachable: dial tcp: timeout", wrapped.Error())
}

func TestBuilderError_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	wrapped := Wrap(cause, CategoryPublish, "push failed")
	require.ErrorIs(t, wrapped, cause)
}

func TestIsRetryable(t *testing.T) {
	require.True(t, IsRetryable(WrapRetryable(stderrors.New("503"), CategoryNetwork, "flaky")))
	require.False(t, IsRetryable(New(CategoryConfig, "bad input")))
	require.False(t, IsRetryable(stderrors.New("plain")))
}

func TestGetCategory(t *testing.T) {
	require.Equal(t, CategoryAuth, GetCategory(New(CategoryAuth, "bad token")))
	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
}

func TestWithContext(t *testing.T) {
	e := New(CategoryPublish, "upload failed").
		WithContext("path", "en/index.html").
		WithContext("attempt", 2)
	require.Equal(t, "en/index.html", e.Context["path"])
	require.Equal(t, 2, e.Context["attempt"])
}
