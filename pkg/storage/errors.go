package storage

import "errors"

// ErrNotFound is returned when a requested account (or handle) does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an atomic commit loses against a concurrent
// commit touching the same account(s). Callers may retry with a fresh read.
var ErrConflict = errors.New("commit conflict")

// ErrHandleTaken is returned when an account creation reuses an existing handle.
var ErrHandleTaken = errors.New("handle already taken")
