package core

import (
	"context"
	"crypto/ecdsa"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

type WalletKind string

const (
	WalletKindPersonal    WalletKind = "personal"
	WalletKindEmergency   WalletKind = "emergency"
	WalletKindInvestments WalletKind = "investments"
	WalletKindDaily       WalletKind = "daily"
)

// CreatableWalletKinds are the kinds a user may provision directly. Daily
// wallets act as the designated receiving wallet for handle transfers.
var CreatableWalletKinds = []WalletKind{
	WalletKindPersonal,
	WalletKindEmergency,
	WalletKindInvestments,
}

func (k WalletKind) Valid() bool {
	switch k {
	case WalletKindPersonal, WalletKindEmergency, WalletKindInvestments, WalletKindDaily:
		return true
	}

	return false
}

// Wallet is the cached view of an on-chain account. Balance is a snapshot
// of the last observed ledger balance, never the authoritative value.
type Wallet struct {
	ID        uint64          `json:"id,omitempty"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	OwnerID   string          `json:"owner_id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Kind      WalletKind      `json:"kind,omitempty"`
	Address   string          `json:"address,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency,omitempty"`
}

// Signer signs transactions for a single wallet address. It is the only
// surface through which secret key material is reachable.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction) (*types.Transaction, error)
}

type WalletStore interface {
	// Create persists the wallet together with its secret key. The key is
	// encrypted at rest and never readable back through the store.
	Create(ctx context.Context, wallet *Wallet, secret *ecdsa.PrivateKey) error
	Find(ctx context.Context, id uint64) (*Wallet, error)
	FindOwner(ctx context.Context, ownerID string, id uint64) (*Wallet, error)
	FindOwnerKind(ctx context.Context, ownerID string, kind WalletKind) (*Wallet, error)
	ListOwner(ctx context.Context, ownerID string) ([]*Wallet, error)
	List(ctx context.Context) ([]*Wallet, error)
	UpdateBalance(ctx context.Context, id uint64, balance decimal.Decimal) error
	SignerOf(ctx context.Context, address string) (Signer, error)
}

type CreateWalletInput struct {
	OwnerID string
	Name    string
	Kind    WalletKind
}

// WalletView decorates a wallet with the fiat value derived from the
// cached exchange rate.
type WalletView struct {
	*Wallet
	USDBalance decimal.Decimal `json:"usd_balance"`
}

type WalletService interface {
	Create(ctx context.Context, input CreateWalletInput) (*Wallet, error)
	List(ctx context.Context, ownerID string) ([]*WalletView, error)
}
