package storage

import (
	"context"

	"github.com/chris/ewallet-ledger/pkg/models"
)

// RecordReader defines the interface for reading an account's transaction history.
type RecordReader interface {
	// ListRecords retrieves all transaction records of an account.
	// Ordering is up to the caller; display sorts by timestamp.
	ListRecords(ctx context.Context, accountID string) ([]models.TransactionRecord, error)
}
