package ledger

import "errors"

// Rejection reasons returned by the decision functions. These are
// business-rule rejections: the coordinator never retries them and no write
// is attempted once one is returned.
var (
	// ErrInvalidAmount is returned when an operation amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrLimitExceeded is returned when a loan would exceed the available capacity.
	ErrLimitExceeded = errors.New("loan exceeds available limit")

	// ErrExceedsOutstandingDebt is returned when a repayment is larger than the outstanding loan.
	ErrExceedsOutstandingDebt = errors.New("repayment exceeds outstanding loan")

	// ErrInsufficientBalance is returned when an operation needs more cash than the account holds.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSelfTransfer is returned when an account attempts to transfer to its own handle.
	ErrSelfTransfer = errors.New("cannot transfer to own account")

	// ErrRecipientNotFound is returned when a transfer recipient handle does not resolve.
	ErrRecipientNotFound = errors.New("recipient not found")
)

// IsRejection reports whether err is one of the business-rule rejections
// above, as opposed to a store or concurrency failure.
func IsRejection(err error) bool {
	for _, rejection := range []error{
		ErrInvalidAmount,
		ErrLimitExceeded,
		ErrExceedsOutstandingDebt,
		ErrInsufficientBalance,
		ErrSelfTransfer,
		ErrRecipientNotFound,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}
	return false
}
