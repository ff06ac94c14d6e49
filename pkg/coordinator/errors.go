package coordinator

import "errors"

// ErrAccountNotFound is returned when an account required by an operation
// does not exist in the store. Fatal for the operation, never retried.
var ErrAccountNotFound = errors.New("account not found")

// ErrConcurrencyExceeded is returned when the bounded number of commit
// attempts is exhausted by conflicting concurrent commits.
var ErrConcurrencyExceeded = errors.New("too many conflicting commits")

// ErrStoreUnavailable is returned for any store failure that is neither a
// conflict nor missing data. The atomic commit guarantees no partial
// mutation was applied.
var ErrStoreUnavailable = errors.New("account store unavailable")
