// Package memory provides an in-process implementation of the storage
// interfaces with the same conflict semantics as the DynamoDB store. It
// backs tests and local development.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chris/ewallet-ledger/pkg/models"
	"github.com/chris/ewallet-ledger/pkg/storage"
	"github.com/google/uuid"
)

// Store holds accounts, handle claims and records in mutex-guarded maps.
// AtomicCommit checks every account version under the lock before applying
// anything, so a commit either fully applies or fully does not, and a commit
// computed from a stale snapshot fails with storage.ErrConflict exactly like
// a DynamoDB conditional check failure.
type Store struct {
	mu       sync.Mutex
	accounts map[string]models.Account
	handles  map[string]string
	records  map[string][]models.TransactionRecord
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: make(map[string]models.Account),
		handles:  make(map[string]string),
		records:  make(map[string][]models.TransactionRecord),
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// CreateAccount persists a new account and claims its handle.
func (s *Store) CreateAccount(_ context.Context, account *models.Account) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.handles[account.Handle]; taken {
		return nil, fmt.Errorf("handle %q: %w", account.Handle, storage.ErrHandleTaken)
	}

	account.Id = uuid.New().String()
	account.CreatedAt = time.Now()

	s.accounts[account.Id] = *account
	s.handles[account.Handle] = account.Id

	return account, nil
}

// GetAccount retrieves a copy of one account by id.
func (s *Store) GetAccount(_ context.Context, accountID string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrNotFound)
	}
	return &account, nil
}

// GetAccounts retrieves copies of several accounts, in the given order.
func (s *Store) GetAccounts(_ context.Context, accountIDs []string) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]models.Account, 0, len(accountIDs))
	for _, id := range accountIDs {
		account, ok := s.accounts[id]
		if !ok {
			return nil, fmt.Errorf("account %s: %w", id, storage.ErrNotFound)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// AtomicCommit applies one commit under the store lock. All version checks
// run before any write, so partial application is impossible.
func (s *Store) AtomicCommit(_ context.Context, commit storage.Commit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range commit.Accounts {
		current, ok := s.accounts[account.Id]
		if !ok {
			return fmt.Errorf("account %s: %w", account.Id, storage.ErrNotFound)
		}
		if current.Version != account.Version {
			return fmt.Errorf("account %s version %d != %d: %w",
				account.Id, account.Version, current.Version, storage.ErrConflict)
		}
	}

	now := time.Now()
	for _, account := range commit.Accounts {
		account.Version++
		s.accounts[account.Id] = account
	}
	for _, record := range commit.Records {
		record.Id = uuid.New().String()
		record.Timestamp = now
		s.records[record.AccountId] = append(s.records[record.AccountId], record)
	}

	return nil
}

// ResolveHandle returns the id of the account owning handle.
func (s *Store) ResolveHandle(_ context.Context, handle string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.handles[handle]
	if !ok {
		return "", fmt.Errorf("handle %q: %w", handle, storage.ErrNotFound)
	}
	return id, nil
}

// ListRecords returns a copy of an account's records in commit order.
func (s *Store) ListRecords(_ context.Context, accountID string) ([]models.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]models.TransactionRecord, len(s.records[accountID]))
	copy(records, s.records[accountID])
	return records, nil
}
