package storage

import "context"

// HandleResolver defines the interface for mapping a human-chosen account
// handle to the store's internal account id. Handles are immutable once
// assigned, so a resolved id stays valid across commit retries.
type HandleResolver interface {
	// ResolveHandle returns the id of the account owning handle, or ErrNotFound.
	ResolveHandle(ctx context.Context, handle string) (string, error)
}
