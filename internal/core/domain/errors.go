package domain

import (
	"errors"
	"fmt"
)

// Expected, user-facing outcomes. Handlers map these to HTTP statuses.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomEnded          = errors.New("room has ended")
	ErrInvalidPassword    = errors.New("invalid room password")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized")

	// ErrDuplicateKey reports a unique-constraint violation from the store.
	// Room creation recovers from it internally; it never reaches a caller.
	ErrDuplicateKey = errors.New("duplicate key")
)

// StorageError wraps a persistence failure. The core never retries these;
// the caller decides whether they are retryable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
