// Package common defines shared sentinel errors used across the DayKeeper
// domain layer. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Account errors.
	ErrDuplicateAccount   = errors.New("account with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAccountDataMissing = errors.New("account data missing")
	ErrCredentialsMissing = errors.New("credentials not found")

	// Event errors.
	ErrEventNotFound = errors.New("event not found")

	// Session errors.
	ErrBiometricAuthFailed = errors.New("biometric authentication failed")
	ErrNoSavedUser         = errors.New("no saved user")

	// ErrStorage marks any failure of the underlying key-value store.
	// Concrete failures are carried by StorageError; errors.Is(err, ErrStorage)
	// matches them all.
	ErrStorage = errors.New("storage failure")
)

// StorageError wraps a backend failure with the operation and key that
// triggered it. It matches ErrStorage via errors.Is and exposes the
// underlying driver error through Unwrap.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage failure: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage failure: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NewStorageError builds a StorageError for the given operation and key.
func NewStorageError(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: err}
}
