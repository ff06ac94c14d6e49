package storage

import (
	"context"

	"github.com/chris/ewallet-ledger/pkg/models"
)

// Commit is one atomic unit of work: full-field account overwrites plus the
// records to append. Each account in Accounts carries the Version of the
// snapshot it was computed from; the store must refuse the whole commit with
// ErrConflict if any stored version no longer matches, and persist the
// account with Version+1 otherwise. The store assigns record ids and stamps
// record timestamps at commit time. Either every write in the commit is
// applied or none is.
type Commit struct {
	Accounts []models.Account
	Records  []models.TransactionRecord
}

// AccountStore defines the interface for reading and atomically mutating accounts.
type AccountStore interface {
	// GetAccount retrieves one account by its id.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// GetAccounts retrieves several accounts by id, in the given order.
	// A single missing account fails the whole read with ErrNotFound.
	GetAccounts(ctx context.Context, accountIDs []string) ([]models.Account, error)

	// CreateAccount persists a new account and claims its handle, assigning
	// the id. Returns ErrHandleTaken if the handle is already claimed.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// AtomicCommit applies one commit as an indivisible unit.
	AtomicCommit(ctx context.Context, commit Commit) error
}
