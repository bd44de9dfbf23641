package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageError_MatchesSentinel(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("get", "user_a@b.c", cause)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, cause))
}

func TestStorageError_Message(t *testing.T) {
	err := NewStorageError("set", "events_1", errors.New("disk full"))
	assert.Equal(t, `storage failure: set "events_1": disk full`, err.Error())

	err = NewStorageError("keys", "", errors.New("timeout"))
	assert.Equal(t, "storage failure: keys: timeout", err.Error())
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewStorageError("del", "user", cause)

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, cause, se.Unwrap())
}
