package fee

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/pandodao/fuji-wallet/retry"
)

const (
	maxAttempts = 3
	backoffStep = time.Second

	// gas estimates get a 20% safety margin.
	gasBufferNum = 120
	gasBufferDen = 100
)

func New(ledger core.LedgerClient) core.FeeEstimator {
	return &service{
		ledger: ledger,
		policy: retry.Policy{
			MaxAttempts: maxAttempts,
			Backoff:     retry.Linear(backoffStep),
			Retryable:   core.IsNetworkError,
		},
	}
}

type service struct {
	ledger core.LedgerClient
	policy retry.Policy
}

func (s *service) Estimate(ctx context.Context, from, to common.Address, amount *big.Int) (*core.FeeEstimate, error) {
	var estimate *core.FeeEstimate

	err := s.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		estimate, err = s.estimate(ctx, from, to, amount)
		return err
	})

	if err != nil {
		return nil, terminal(err)
	}

	return estimate, nil
}

func (s *service) estimate(ctx context.Context, from, to common.Address, amount *big.Int) (*core.FeeEstimate, error) {
	feeData, err := s.ledger.FeeData(ctx)
	if err != nil {
		return nil, fmt.Errorf("fee data: %w", err)
	}

	gas, err := s.ledger.EstimateGas(ctx, from, to, amount)
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	gasLimit := (gas*gasBufferNum + gasBufferDen - 1) / gasBufferDen

	total := new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), feeData.MaxFeePerGas)

	return &core.FeeEstimate{
		GasLimit:             gasLimit,
		MaxFeePerGas:         feeData.MaxFeePerGas,
		MaxPriorityFeePerGas: feeData.MaxPriorityFeePerGas,
		Total:                total,
	}, nil
}

// terminal maps an exhausted estimation error to exactly one of the two
// caller-visible kinds: funds-related or generic.
func terminal(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "insufficient funds") {
		return fmt.Errorf("%w: %v", core.ErrGasFunds, err)
	}

	return fmt.Errorf("estimate fees: %w", err)
}
