package database

import "errors"

// ErrStorageUnavailable marks a failed read or write against the store.
var ErrStorageUnavailable = errors.New("storage unavailable")
