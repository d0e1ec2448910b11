package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type FeeData struct {
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Succeeded   bool
}

// LedgerClient is the remote ledger boundary. Implementations classify
// failures as NetworkError (transient) or InvalidRequestError (permanent)
// so callers can decide retry eligibility.
type LedgerClient interface {
	ChainID() *big.Int
	Balance(ctx context.Context, address common.Address) (*big.Int, error)
	FeeData(ctx context.Context) (*FeeData, error)
	EstimateGas(ctx context.Context, from, to common.Address, amount *big.Int) (uint64, error)
	Nonce(ctx context.Context, address common.Address) (uint64, error)
	Submit(ctx context.Context, tx *types.Transaction) error
	// WaitConfirmed blocks until the transaction has the requested number
	// of confirmations or ctx expires, in which case it returns
	// ErrTransactionTimeout. The outcome is unknown after a timeout.
	WaitConfirmed(ctx context.Context, hash common.Hash, confirmations uint64) (*Receipt, error)
}

type FeeEstimate struct {
	GasLimit             uint64
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	Total                *big.Int
}

type FeeEstimator interface {
	Estimate(ctx context.Context, from, to common.Address, amount *big.Int) (*FeeEstimate, error)
}
