package repositories

import "errors"

// ErrNotFound is returned when a record does not exist. Callers treat a
// record owned by a different user the same way, so ownership and absence
// are indistinguishable above this layer.
var ErrNotFound = errors.New("record not found")
