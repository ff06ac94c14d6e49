package mapping

import (
	"errors"

	"github.com/chris/ewallet-ledger/pkg/api"
	"github.com/chris/ewallet-ledger/pkg/models"
	"github.com/shopspring/decimal"
)

// ErrSubCentAmount is returned when a decimal amount has more than two
// decimal places. Amounts are never rounded: rounding would move money the
// caller did not ask for.
var ErrSubCentAmount = errors.New("amount has sub-cent precision")

// ErrAmountTooLarge is returned when the cent value of an amount does not fit
// in an int64. IntPart wraps silently on overflow, so the bound has to be
// checked before converting.
var ErrAmountTooLarge = errors.New("amount exceeds representable range")

// ToCents converts a decimal currency amount to integer cents.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Shift(2)
	if !cents.IsInteger() {
		return 0, ErrSubCentAmount
	}
	if !cents.BigInt().IsInt64() {
		return 0, ErrAmountTooLarge
	}
	return cents.IntPart(), nil
}

// FromCents converts integer cents to a decimal currency amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(account *models.Account) *api.Account {
	return &api.Account{
		Id:                account.Id,
		Handle:            account.Handle,
		DisplayName:       account.DisplayName,
		CashBalance:       FromCents(account.CashBalance),
		LoanLimit:         FromCents(account.LoanLimit),
		LoanOutstanding:   FromCents(account.LoanOutstanding),
		AvailableCapacity: FromCents(account.AvailableCapacity()),
		CreatedAt:         account.CreatedAt,
	}
}

// ToApiRecord converts a domain TransactionRecord to its API model.
func ToApiRecord(record *models.TransactionRecord) *api.TransactionRecord {
	return &api.TransactionRecord{
		Id:          record.Id,
		AccountId:   record.AccountId,
		Kind:        string(record.Kind),
		Amount:      FromCents(record.Amount),
		Description: record.Description,
		Source:      record.Source,
		Timestamp:   record.Timestamp,
	}
}
