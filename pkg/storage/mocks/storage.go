// Package mocks provides testify mocks of the storage interfaces.
package mocks

import (
	"context"

	"github.com/chris/ewallet-ledger/pkg/models"
	"github.com/chris/ewallet-ledger/pkg/storage"
	"github.com/stretchr/testify/mock"
)

// Storage is a mock implementation of the composed storage.Storage interface.
type Storage struct {
	mock.Mock
}

var _ storage.Storage = (*Storage)(nil)

func (m *Storage) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *Storage) GetAccounts(ctx context.Context, accountIDs []string) ([]models.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *Storage) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *Storage) AtomicCommit(ctx context.Context, commit storage.Commit) error {
	args := m.Called(ctx, commit)
	return args.Error(0)
}

func (m *Storage) ResolveHandle(ctx context.Context, handle string) (string, error) {
	args := m.Called(ctx, handle)
	return args.String(0), args.Error(1)
}

func (m *Storage) ListRecords(ctx context.Context, accountID string) ([]models.TransactionRecord, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TransactionRecord), args.Error(1)
}
