package store

import "errors"

// ErrStorageUnavailable matches every error the gateway returns.
var ErrStorageUnavailable = errors.New("storage unavailable")

// StorageError wraps a driver or transport failure with the gateway step that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrStorageUnavailable as a match.
func (e *StorageError) Is(target error) bool { return target == ErrStorageUnavailable }
