// Package coordinator orchestrates ledger operations against the account
// store. Every operation follows the same protocol: read fresh snapshot(s)
// through the store, pass them to the ledger engine, commit the decision
// atomically. Commits that lose against a concurrent writer are retried a
// bounded number of times from a fresh read; business-rule rejections are
// surfaced immediately and never retried. Amounts are only ever validated
// against the snapshot read inside the current attempt, never against
// anything cached earlier.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/ewallet-ledger/pkg/events"
	"github.com/chris/ewallet-ledger/pkg/ledger"
	"github.com/chris/ewallet-ledger/pkg/models"
	"github.com/chris/ewallet-ledger/pkg/storage"
	"github.com/shopspring/decimal"
)

// DefaultMaxAttempts bounds the commit retry loop.
const DefaultMaxAttempts = 3

// Operation names as published in committed-operation events.
const (
	OpSignupBonus   = "signup_bonus"
	OpTakeLoan      = "take_loan"
	OpRepayLoan     = "repay_loan"
	OpTransfer      = "transfer"
	OpUpdateProfile = "update_profile"
)

// TransferResult carries both updated accounts of a committed transfer.
type TransferResult struct {
	Sender    models.Account
	Recipient models.Account
}

// Coordinator exposes one entry point per ledger operation.
type Coordinator struct {
	store       storage.AccountStore
	resolver    storage.HandleResolver
	publisher   events.Publisher
	logger      *slog.Logger
	maxAttempts int
}

// New creates a Coordinator with the default retry bound. A nil publisher
// disables event publishing; a nil logger falls back to slog.Default.
func New(store storage.AccountStore, resolver storage.HandleResolver, publisher events.Publisher, logger *slog.Logger) *Coordinator {
	if publisher == nil {
		publisher = &events.NoOpPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		store:       store,
		resolver:    resolver,
		publisher:   publisher,
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
	}
}

// SignupBonus appends the Income record that makes the initial balance
// visible in history. Run once, right after account creation.
func (c *Coordinator) SignupBonus(ctx context.Context, accountID string) (*models.Account, error) {
	return c.run(ctx, OpSignupBonus, accountID, ledger.SignupBonus)
}

// TakeLoan disburses amount cents against the account's loan capacity.
func (c *Coordinator) TakeLoan(ctx context.Context, accountID string, amount int64) (*models.Account, error) {
	return c.run(ctx, OpTakeLoan, accountID, func(account models.Account) (*ledger.Decision, error) {
		return ledger.TakeLoan(account, amount)
	})
}

// RepayLoan pays amount cents of the outstanding debt.
func (c *Coordinator) RepayLoan(ctx context.Context, accountID string, amount int64) (*models.Account, error) {
	return c.run(ctx, OpRepayLoan, accountID, func(account models.Account) (*ledger.Decision, error) {
		return ledger.RepayLoan(account, amount)
	})
}

// RepayLoanInFull repays the entire outstanding debt. The amount is taken
// from the snapshot read inside each attempt, so it reflects the debt at
// commit time rather than a value cached when a screen loaded.
func (c *Coordinator) RepayLoanInFull(ctx context.Context, accountID string) (*models.Account, error) {
	return c.run(ctx, OpRepayLoan, accountID, ledger.RepayLoanInFull)
}

// UpdateDisplayName edits the account's display name. Profile edits go
// through the same optimistic commit loop as money movements so a rename can
// never clobber a concurrent balance write.
func (c *Coordinator) UpdateDisplayName(ctx context.Context, accountID, displayName string) (*models.Account, error) {
	return c.run(ctx, OpUpdateProfile, accountID, func(account models.Account) (*ledger.Decision, error) {
		account.DisplayName = displayName
		return &ledger.Decision{Mutations: []models.Account{account}}, nil
	})
}

// Transfer moves amount cents from the sender to the account owning
// recipientHandle. The handle is resolved once up front (handles are
// immutable); both account snapshots are re-read on every attempt and both
// mutations commit in one atomic unit.
func (c *Coordinator) Transfer(ctx context.Context, senderID, recipientHandle string, amount int64, description string) (*TransferResult, error) {
	recipientID, err := c.resolver.ResolveHandle(ctx, recipientHandle)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ledger.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("%w: resolving handle: %v", ErrStoreUnavailable, err)
	}

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		accounts, err := c.store.GetAccounts(ctx, []string{senderID, recipientID})
		if err != nil {
			return nil, classifyRead(err)
		}

		decision, err := ledger.Transfer(accounts[0], accounts[1], amount, description)
		if err != nil {
			return nil, err
		}

		if err := c.commit(ctx, decision); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				c.logRetry(OpTransfer, senderID, attempt, err)
				continue
			}
			return nil, err
		}

		c.publish(ctx, events.OperationCommitted{
			Operation:      OpTransfer,
			AccountId:      senderID,
			CounterpartyId: recipientID,
			Amount:         centsToDecimal(amount),
			OccurredAt:     time.Now(),
		})

		return &TransferResult{
			Sender:    committed(decision.Mutations[0]),
			Recipient: committed(decision.Mutations[1]),
		}, nil
	}

	return nil, fmt.Errorf("transfer from %s: %w", senderID, ErrConcurrencyExceeded)
}

// run executes one single-account operation through the read-decide-commit
// loop shared by every operation.
func (c *Coordinator) run(ctx context.Context, op, accountID string, decide func(models.Account) (*ledger.Decision, error)) (*models.Account, error) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		snapshot, err := c.store.GetAccount(ctx, accountID)
		if err != nil {
			return nil, classifyRead(err)
		}

		decision, err := decide(*snapshot)
		if err != nil {
			return nil, err
		}

		if err := c.commit(ctx, decision); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				c.logRetry(op, accountID, attempt, err)
				continue
			}
			return nil, err
		}

		updated := *snapshot
		if len(decision.Mutations) > 0 {
			updated = committed(decision.Mutations[0])
		}

		// Committed-operation events describe money movements; decisions
		// without records (profile edits) publish nothing.
		if len(decision.Records) > 0 {
			c.publish(ctx, events.OperationCommitted{
				Operation:  op,
				AccountId:  accountID,
				Amount:     centsToDecimal(decision.Records[0].Amount),
				OccurredAt: time.Now(),
			})
		}

		return &updated, nil
	}

	return nil, fmt.Errorf("%s on %s: %w", op, accountID, ErrConcurrencyExceeded)
}

func (c *Coordinator) commit(ctx context.Context, decision *ledger.Decision) error {
	err := c.store.AtomicCommit(ctx, storage.Commit{
		Accounts: decision.Mutations,
		Records:  decision.Records,
	})
	if err != nil && !errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}

// publish emits the committed-operation event. The commit is already
// durable, so a publish failure is logged and swallowed.
func (c *Coordinator) publish(ctx context.Context, event events.OperationCommitted) {
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Error("failed to publish committed operation",
			slog.String("operation", event.Operation),
			slog.String("account_id", event.AccountId),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Coordinator) logRetry(op, accountID string, attempt int, err error) {
	c.logger.Info("commit conflict, retrying from fresh snapshot",
		slog.String("operation", op),
		slog.String("account_id", accountID),
		slog.Int("attempt", attempt),
		slog.String("error", err.Error()),
	)
}

func classifyRead(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrAccountNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// committed mirrors the version bump the store applies at commit, so callers
// see the account exactly as it is now persisted.
func committed(account models.Account) models.Account {
	account.Version++
	return account
}

func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}
