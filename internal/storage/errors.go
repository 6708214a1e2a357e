package storage

import "errors"

// ErrNotFound is returned when an operation targets an id that does not
// exist in the store. Callers treat it differently from transport failure:
// a stale listing should be refreshed rather than the write retried.
var ErrNotFound = errors.New("record not found")
