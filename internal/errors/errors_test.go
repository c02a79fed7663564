package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	err := NewConflictError("Email already registered")
	wrapped := fmt.Errorf("register: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrConflict))
	assert.False(t, stderrors.Is(wrapped, ErrAuth))
	assert.True(t, stderrors.Is(wrapped, NewConflictError("Email already registered")))
	assert.False(t, stderrors.Is(wrapped, NewConflictError("other")))
}

func TestKindOfAndMessage(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := NewNetworkError("No response from movie service", cause)

	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Equal(t, "No response from movie service", Message(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "caused by")

	assert.Equal(t, KindInternal, KindOf(stderrors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, "plain", Message(stderrors.New("plain")))
	assert.Empty(t, Message(nil))
}
