package models

import (
	"time"
)

// TransactionKind defines the possible kinds of a transaction record.
type TransactionKind string

const (
	INCOME            TransactionKind = "INCOME"
	LOAN_TAKEN        TransactionKind = "LOAN_TAKEN"
	LOAN_REPAYMENT    TransactionKind = "LOAN_REPAYMENT"
	TRANSFER_SENT     TransactionKind = "TRANSFER_SENT"
	TRANSFER_RECEIVED TransactionKind = "TRANSFER_RECEIVED"
)

// Creation defaults for a new account, in cents.
const (
	InitialBalanceCents   = 10_000  // $100.00 signup bonus
	InitialLoanLimitCents = 100_000 // $1,000.00 fixed loan limit
)

// Account represents the internal domain model for a user's account.
// All monetary fields are integer minor currency units (cents); they never
// pass through binary floating point. Version backs optimistic concurrency:
// every committed mutation increments it by one.
type Account struct {
	Id              string    `json:"id" dynamodbav:"id"`
	Handle          string    `json:"handle" dynamodbav:"handle"`
	DisplayName     string    `json:"display_name" dynamodbav:"display_name"`
	CashBalance     int64     `json:"cash_balance" dynamodbav:"cash_balance"`
	LoanLimit       int64     `json:"loan_limit" dynamodbav:"loan_limit"`
	LoanOutstanding int64     `json:"loan_outstanding" dynamodbav:"loan_outstanding"`
	Version         int64     `json:"version" dynamodbav:"version"`
	CreatedAt       time.Time `json:"created_at" dynamodbav:"created_at"`
}

// AvailableCapacity returns the amount the account may still borrow.
func (a *Account) AvailableCapacity() int64 {
	return a.LoanLimit - a.LoanOutstanding
}

// NewAccount builds an account with the fixed creation defaults. The store
// assigns the id and stamps CreatedAt when the account is persisted.
func NewAccount(handle, displayName string) *Account {
	return &Account{
		Handle:          handle,
		DisplayName:     displayName,
		CashBalance:     InitialBalanceCents,
		LoanLimit:       InitialLoanLimitCents,
		LoanOutstanding: 0,
		Version:         1,
	}
}

// TransactionRecord is a single immutable entry in an account's history.
// Records are append-only: once committed they are never edited or deleted.
// The store assigns Id and stamps Timestamp at commit time.
type TransactionRecord struct {
	Id          string          `json:"id" dynamodbav:"id"`
	AccountId   string          `json:"account_id" dynamodbav:"account_id"`
	Kind        TransactionKind `json:"kind" dynamodbav:"kind"`
	Amount      int64           `json:"amount" dynamodbav:"amount"`
	Description string          `json:"description" dynamodbav:"description"`
	Source      string          `json:"source" dynamodbav:"source"`
	Timestamp   time.Time       `json:"timestamp" dynamodbav:"timestamp"`
}
