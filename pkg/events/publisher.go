package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OperationCommitted is published after a ledger operation has been durably
// committed. It is observability output only: the committed store state is
// the source of truth, and consumers must tolerate missing events.
type OperationCommitted struct {
	Operation      string          `json:"operation"`
	AccountId      string          `json:"account_id"`
	CounterpartyId string          `json:"counterparty_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// Publisher defines the interface for publishing committed-operation events.
type Publisher interface {
	Publish(ctx context.Context, event OperationCommitted) error
}
