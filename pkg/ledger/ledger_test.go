package ledger

import (
	"testing"

	"github.com/chris/ewallet-ledger/pkg/models"
	"github.com/stretchr/testify/assert"
)

func newAccount(id, handle string, balance, limit, outstanding int64) models.Account {
	return models.Account{
		Id:              id,
		Handle:          handle,
		CashBalance:     balance,
		LoanLimit:       limit,
		LoanOutstanding: outstanding,
		Version:         1,
	}
}

func TestSignupBonus(t *testing.T) {
	account := newAccount("acc-1", "alice", 10_000, 100_000, 0)

	decision, err := SignupBonus(account)

	assert.NoError(t, err)
	assert.Empty(t, decision.Mutations, "initial balances are set at creation, not by the bonus record")
	assert.Len(t, decision.Records, 1)
	assert.Equal(t, models.INCOME, decision.Records[0].Kind)
	assert.Equal(t, int64(10_000), decision.Records[0].Amount)
	assert.Equal(t, "acc-1", decision.Records[0].AccountId)
}

func TestTakeLoan(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 10_000, 100_000, 0)

		decision, err := TakeLoan(account, 50_000)

		assert.NoError(t, err)
		assert.Len(t, decision.Mutations, 1)
		assert.Equal(t, int64(60_000), decision.Mutations[0].CashBalance)
		assert.Equal(t, int64(50_000), decision.Mutations[0].LoanOutstanding)
		assert.Equal(t, int64(100_000), decision.Mutations[0].LoanLimit)
		assert.Len(t, decision.Records, 1)
		assert.Equal(t, models.LOAN_TAKEN, decision.Records[0].Kind)
		assert.Equal(t, int64(50_000), decision.Records[0].Amount)
	})

	t.Run("Full Capacity Is Accepted", func(t *testing.T) {
		// $1,000.00 against an untouched $1,000.00 limit: inclusive boundary.
		account := newAccount("acc-1", "alice", 10_000, 100_000, 0)

		decision, err := TakeLoan(account, 100_000)

		assert.NoError(t, err)
		assert.Equal(t, int64(110_000), decision.Mutations[0].CashBalance)
		assert.Equal(t, int64(100_000), decision.Mutations[0].LoanOutstanding)
	})

	t.Run("One Cent Over Capacity Is Rejected", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 110_000, 100_000, 100_000)

		_, err := TakeLoan(account, 1)

		assert.ErrorIs(t, err, ErrLimitExceeded)
	})

	t.Run("Capacity Accounts For Outstanding Debt", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 10_000, 100_000, 70_000)

		_, err := TakeLoan(account, 30_001)
		assert.ErrorIs(t, err, ErrLimitExceeded)

		_, err = TakeLoan(account, 30_000)
		assert.NoError(t, err)
	})

	t.Run("Zero Amount", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 10_000, 100_000, 0)

		_, err := TakeLoan(account, 0)

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Negative Amount", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 10_000, 100_000, 0)

		_, err := TakeLoan(account, -500)

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestRepayLoan(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 60_000, 100_000, 50_000)

		decision, err := RepayLoan(account, 20_000)

		assert.NoError(t, err)
		assert.Equal(t, int64(40_000), decision.Mutations[0].CashBalance)
		assert.Equal(t, int64(30_000), decision.Mutations[0].LoanOutstanding)
		assert.Equal(t, int64(100_000), decision.Mutations[0].LoanLimit, "repayment must not touch the loan limit")
		assert.Len(t, decision.Records, 1)
		assert.Equal(t, models.LOAN_REPAYMENT, decision.Records[0].Kind)
	})

	t.Run("Take Then Repay Restores State", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 10_000, 100_000, 0)

		taken, err := TakeLoan(account, 100_000)
		assert.NoError(t, err)
		assert.Equal(t, int64(110_000), taken.Mutations[0].CashBalance)
		assert.Equal(t, int64(100_000), taken.Mutations[0].LoanOutstanding)

		repaid, err := RepayLoan(taken.Mutations[0], 100_000)
		assert.NoError(t, err)
		assert.Equal(t, account.CashBalance, repaid.Mutations[0].CashBalance)
		assert.Equal(t, account.LoanOutstanding, repaid.Mutations[0].LoanOutstanding)
	})

	t.Run("More Than Outstanding", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 60_000, 100_000, 50_000)

		_, err := RepayLoan(account, 50_001)

		assert.ErrorIs(t, err, ErrExceedsOutstandingDebt)
	})

	t.Run("More Than Balance", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 10_000, 100_000, 50_000)

		_, err := RepayLoan(account, 20_000)

		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("Entire Balance Is Accepted", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 10_000, 100_000, 50_000)

		decision, err := RepayLoan(account, 10_000)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), decision.Mutations[0].CashBalance)
		assert.Equal(t, int64(40_000), decision.Mutations[0].LoanOutstanding)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 60_000, 100_000, 50_000)

		_, err := RepayLoan(account, 0)

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestRepayLoanInFull(t *testing.T) {
	t.Run("Repays Outstanding From Snapshot", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 60_000, 100_000, 50_000)

		decision, err := RepayLoanInFull(account)

		assert.NoError(t, err)
		assert.Equal(t, int64(10_000), decision.Mutations[0].CashBalance)
		assert.Equal(t, int64(0), decision.Mutations[0].LoanOutstanding)
		assert.Equal(t, int64(50_000), decision.Records[0].Amount)
	})

	t.Run("Nothing Outstanding", func(t *testing.T) {
		account := newAccount("acc-1", "alice", 60_000, 100_000, 0)

		_, err := RepayLoanInFull(account)

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestTransfer(t *testing.T) {
	alice := newAccount("acc-1", "alice", 5_000, 100_000, 0)
	bob := newAccount("acc-2", "bob", 0, 100_000, 0)

	t.Run("Success", func(t *testing.T) {
		decision, err := Transfer(alice, bob, 2_000, "lunch")

		assert.NoError(t, err)
		assert.Len(t, decision.Mutations, 2)
		assert.Equal(t, int64(3_000), decision.Mutations[0].CashBalance)
		assert.Equal(t, int64(2_000), decision.Mutations[1].CashBalance)
		assert.Len(t, decision.Records, 2)
		assert.Equal(t, models.TRANSFER_SENT, decision.Records[0].Kind)
		assert.Equal(t, "acc-1", decision.Records[0].AccountId)
		assert.Equal(t, models.TRANSFER_RECEIVED, decision.Records[1].Kind)
		assert.Equal(t, "acc-2", decision.Records[1].AccountId)
		assert.Equal(t, "lunch", decision.Records[0].Description)
	})

	t.Run("Entire Balance Is Accepted", func(t *testing.T) {
		decision, err := Transfer(alice, bob, 5_000, "")

		assert.NoError(t, err)
		assert.Equal(t, int64(0), decision.Mutations[0].CashBalance)
		assert.Equal(t, int64(5_000), decision.Mutations[1].CashBalance)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		_, err := Transfer(alice, bob, 6_000, "")

		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("Self Transfer", func(t *testing.T) {
		_, err := Transfer(alice, alice, 1_000, "")

		assert.ErrorIs(t, err, ErrSelfTransfer)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		_, err := Transfer(alice, bob, 0, "")

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Default Description", func(t *testing.T) {
		decision, err := Transfer(alice, bob, 1_000, "")

		assert.NoError(t, err)
		assert.Equal(t, DefaultTransferDescription, decision.Records[0].Description)
		assert.Equal(t, DefaultTransferDescription, decision.Records[1].Description)
	})

	t.Run("Loan Fields Untouched", func(t *testing.T) {
		borrower := newAccount("acc-3", "carol", 50_000, 100_000, 30_000)

		decision, err := Transfer(borrower, bob, 10_000, "")

		assert.NoError(t, err)
		assert.Equal(t, int64(30_000), decision.Mutations[0].LoanOutstanding)
		assert.Equal(t, int64(100_000), decision.Mutations[0].LoanLimit)
	})
}

func TestDecisionsDoNotMutateSnapshots(t *testing.T) {
	account := newAccount("acc-1", "alice", 10_000, 100_000, 0)

	_, err := TakeLoan(account, 50_000)
	assert.NoError(t, err)

	assert.Equal(t, int64(10_000), account.CashBalance)
	assert.Equal(t, int64(0), account.LoanOutstanding)
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(ErrInvalidAmount))
	assert.True(t, IsRejection(ErrLimitExceeded))
	assert.True(t, IsRejection(ErrRecipientNotFound))
	assert.False(t, IsRejection(assert.AnError))
}
