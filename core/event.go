package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventBalanceUpdate = "BALANCE_UPDATE"

type BalanceEvent struct {
	Type      string          `json:"type"`
	WalletID  uint64          `json:"wallet_id"`
	Balance   decimal.Decimal `json:"balance"`
	Timestamp time.Time       `json:"timestamp"`
}

// Channel is a live push connection to a single owner.
type Channel interface {
	Send(payload []byte) error
	Close() error
}

// NotificationSink delivers events to at most one live channel per owner.
// Delivery is best-effort, at most once, with no queueing or replay.
type NotificationSink interface {
	Register(ownerID string, ch Channel)
	Unregister(ownerID string, ch Channel)
	Publish(ownerID string, event any)
}
