// Package api holds the request and response payloads of the HTTP surface.
// Monetary amounts cross the wire as decimal strings ("125.50"); the mapping
// package converts them to the integer-cents representation the ledger core
// works in.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewAccount is the payload for creating an account.
type NewAccount struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
}

// AccountUpdate is the payload for editing an account's mutable profile
// fields. The handle is permanent and cannot be changed here.
type AccountUpdate struct {
	DisplayName string `json:"display_name"`
}

// Account is the API representation of an account.
type Account struct {
	Id                string          `json:"id"`
	Handle            string          `json:"handle"`
	DisplayName       string          `json:"display_name"`
	CashBalance       decimal.Decimal `json:"cash_balance"`
	LoanLimit         decimal.Decimal `json:"loan_limit"`
	LoanOutstanding   decimal.Decimal `json:"loan_outstanding"`
	AvailableCapacity decimal.Decimal `json:"available_capacity"`
	CreatedAt         time.Time       `json:"created_at"`
}

// LoanRequest is the payload for taking a loan.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// RepaymentRequest is the payload for repaying a loan. A nil Amount means
// repay the full outstanding debt.
type RepaymentRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// TransferRequest is the payload for a peer-to-peer transfer.
type TransferRequest struct {
	RecipientHandle string          `json:"recipient_handle"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
}

// TransferResult carries both updated balances of a committed transfer.
type TransferResult struct {
	Sender    Account `json:"sender"`
	Recipient Account `json:"recipient"`
}

// TransactionRecord is the API representation of one history entry.
type TransactionRecord struct {
	Id          string          `json:"id"`
	AccountId   string          `json:"account_id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	Timestamp   time.Time       `json:"timestamp"`
}
