package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionKindTransfer TransactionKind = "transfer"
	TransactionKindLevy     TransactionKind = "levy"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

type TransactionMeta struct {
	Note             string `json:"note,omitempty"`
	TxHash           string `json:"tx_hash,omitempty"`
	BlockNumber      uint64 `json:"block_number,omitempty"`
	GasUsed          uint64 `json:"gas_used,omitempty"`
	RecipientAddress string `json:"recipient_address,omitempty"`
}

// Transaction records a submitted ledger transfer. Rows are created
// pending at submission and finalized exactly once; a row left pending
// means the confirmation outcome was never observed.
type Transaction struct {
	ID        uint64            `json:"id,omitempty"`
	CreatedAt time.Time         `json:"created_at,omitempty"`
	TraceID   string            `json:"trace_id,omitempty"`
	FromOwner string            `json:"from_owner,omitempty"`
	ToOwner   string            `json:"to_owner,omitempty"`
	Amount    decimal.Decimal   `json:"amount"`
	Kind      TransactionKind   `json:"kind,omitempty"`
	Status    TransactionStatus `json:"status,omitempty"`
	Meta      TransactionMeta   `json:"meta"`
}

type TransactionStore interface {
	Create(ctx context.Context, tx *Transaction) error
	Finalize(ctx context.Context, id uint64, status TransactionStatus, meta TransactionMeta) error
	FindTrace(ctx context.Context, traceID string) (*Transaction, error)
	ListOwner(ctx context.Context, ownerID string) ([]*Transaction, error)
}
