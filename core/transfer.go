package core

import (
	"context"

	"github.com/shopspring/decimal"
)

type SendInput struct {
	// TraceID deduplicates retried client requests. Generated when empty.
	TraceID    string
	OwnerID    string
	WalletID   uint64
	Recipient  string
	UseAddress bool
	Amount     decimal.Decimal
	Note       string
}

type SendResult struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
}

type TransferService interface {
	Send(ctx context.Context, input *SendInput) (*SendResult, error)
	// PayLevy transfers from the owner's daily wallet to the configured
	// collection address.
	PayLevy(ctx context.Context, ownerID string, amount decimal.Decimal) (*SendResult, error)
}
