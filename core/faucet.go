package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Faucet tops up test-network wallets. Best-effort: callers swallow
// failures and continue.
type Faucet interface {
	Drip(ctx context.Context, address common.Address) (bool, error)
}
