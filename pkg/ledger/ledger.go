// Package ledger contains the pure decision logic of the transaction engine.
// Each function takes the freshly read account snapshot(s) for one logical
// operation and either computes the full-field mutations plus the records to
// append, or rejects the operation with one of the sentinel errors in this
// package. Nothing here performs I/O; the coordinator is responsible for
// reading snapshots and committing decisions atomically.
package ledger

import (
	"github.com/chris/ewallet-ledger/pkg/models"
)

// Record metadata carried over from the original product.
const (
	sourceBank      = "eWallet Bank"
	sourceRepayment = "Debt Repayment"

	descSignupBonus = "Signup Bonus"
	descLoanTaken   = "Loan Disbursed"
	descLoanRepaid  = "Loan Repayment Made"

	// DefaultTransferDescription is used when the sender gives none.
	DefaultTransferDescription = "P2P Transfer"
)

// Decision is the outcome of an accepted operation: the account states to
// write back and the records to append, committed together as one atomic
// unit. Mutations are full-field overwrites keyed by account id.
type Decision struct {
	Mutations []models.Account
	Records   []models.TransactionRecord
}

// SignupBonus produces the Income record that makes the initial balance
// visible in history. The balance itself is set at account creation, so the
// decision carries no mutation.
func SignupBonus(account models.Account) (*Decision, error) {
	return &Decision{
		Records: []models.TransactionRecord{
			{
				AccountId:   account.Id,
				Kind:        models.INCOME,
				Amount:      models.InitialBalanceCents,
				Description: descSignupBonus,
				Source:      sourceBank,
			},
		},
	}, nil
}

// TakeLoan disburses amount cents into the cash balance and adds the same
// amount to the outstanding debt. Capacity is checked against the snapshot
// passed in; an amount exactly equal to the available capacity is accepted.
func TakeLoan(account models.Account, amount int64) (*Decision, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount > account.AvailableCapacity() {
		return nil, ErrLimitExceeded
	}

	account.CashBalance += amount
	account.LoanOutstanding += amount

	return &Decision{
		Mutations: []models.Account{account},
		Records: []models.TransactionRecord{
			{
				AccountId:   account.Id,
				Kind:        models.LOAN_TAKEN,
				Amount:      amount,
				Description: descLoanTaken,
				Source:      sourceBank,
			},
		},
	}, nil
}

// RepayLoan pays amount cents of the outstanding debt out of the cash
// balance. The loan limit is untouched: capacity recovers because the
// outstanding debt shrinks. Amounts equal to the outstanding debt or to the
// full cash balance are accepted.
func RepayLoan(account models.Account, amount int64) (*Decision, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount > account.LoanOutstanding {
		return nil, ErrExceedsOutstandingDebt
	}
	if amount > account.CashBalance {
		return nil, ErrInsufficientBalance
	}

	account.CashBalance -= amount
	account.LoanOutstanding -= amount

	return &Decision{
		Mutations: []models.Account{account},
		Records: []models.TransactionRecord{
			{
				AccountId:   account.Id,
				Kind:        models.LOAN_REPAYMENT,
				Amount:      amount,
				Description: descLoanRepaid,
				Source:      sourceRepayment,
			},
		},
	}, nil
}

// RepayLoanInFull is RepayLoan with the amount defaulted to the outstanding
// debt of the snapshot. The coordinator re-reads the snapshot on every
// attempt, so the defaulted amount always reflects the debt at commit time.
func RepayLoanInFull(account models.Account) (*Decision, error) {
	return RepayLoan(account, account.LoanOutstanding)
}

// Transfer moves amount cents from sender to recipient and appends one
// record to each side. Both mutations and both records form a single
// decision so the commit is all-or-nothing across the two accounts.
func Transfer(sender, recipient models.Account, amount int64, description string) (*Decision, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if sender.Id == recipient.Id || sender.Handle == recipient.Handle {
		return nil, ErrSelfTransfer
	}
	if amount > sender.CashBalance {
		return nil, ErrInsufficientBalance
	}
	if description == "" {
		description = DefaultTransferDescription
	}

	sender.CashBalance -= amount
	recipient.CashBalance += amount

	return &Decision{
		Mutations: []models.Account{sender, recipient},
		Records: []models.TransactionRecord{
			{
				AccountId:   sender.Id,
				Kind:        models.TRANSFER_SENT,
				Amount:      amount,
				Description: description,
				Source:      sourceBank,
			},
			{
				AccountId:   recipient.Id,
				Kind:        models.TRANSFER_RECEIVED,
				Amount:      amount,
				Description: description,
				Source:      sourceBank,
			},
		},
	}, nil
}
