package fee

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/pandodao/fuji-wallet/retry"
)

type fakeLedger struct {
	feeData     func() (*core.FeeData, error)
	estimateGas func() (uint64, error)

	feeDataCalls int
}

func (f *fakeLedger) ChainID() *big.Int { return big.NewInt(43113) }

func (f *fakeLedger) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeLedger) FeeData(ctx context.Context) (*core.FeeData, error) {
	f.feeDataCalls++
	return f.feeData()
}

func (f *fakeLedger) EstimateGas(ctx context.Context, from, to common.Address, amount *big.Int) (uint64, error) {
	return f.estimateGas()
}

func (f *fakeLedger) Nonce(ctx context.Context, address common.Address) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeLedger) Submit(ctx context.Context, tx *types.Transaction) error {
	return errors.New("not implemented")
}

func (f *fakeLedger) WaitConfirmed(ctx context.Context, hash common.Hash, confirmations uint64) (*core.Receipt, error) {
	return nil, errors.New("not implemented")
}

func newTestService(ledger *fakeLedger, slept *[]time.Duration) *service {
	return &service{
		ledger: ledger,
		policy: retry.Policy{
			MaxAttempts: maxAttempts,
			Backoff:     retry.Linear(backoffStep),
			Retryable:   core.IsNetworkError,
			Sleep: func(ctx context.Context, d time.Duration) error {
				*slept = append(*slept, d)
				return nil
			},
		},
	}
}

func TestEstimateAppliesGasBuffer(t *testing.T) {
	ledger := &fakeLedger{
		feeData: func() (*core.FeeData, error) {
			return &core.FeeData{
				MaxFeePerGas:         big.NewInt(50),
				MaxPriorityFeePerGas: big.NewInt(2),
			}, nil
		},
		estimateGas: func() (uint64, error) { return 21000, nil },
	}

	var slept []time.Duration
	svc := newTestService(ledger, &slept)

	estimate, err := svc.Estimate(context.Background(), common.Address{}, common.Address{}, big.NewInt(1))
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	if estimate.GasLimit != 25200 {
		t.Errorf("gas limit: got %d, want 25200", estimate.GasLimit)
	}

	wantTotal := new(big.Int).Mul(big.NewInt(25200), big.NewInt(50))
	if estimate.Total.Cmp(wantTotal) != 0 {
		t.Errorf("total: got %s, want %s", estimate.Total, wantTotal)
	}

	if len(slept) != 0 {
		t.Errorf("unexpected retries: %v", slept)
	}
}

func TestEstimateRetriesTransientFailures(t *testing.T) {
	failures := 2
	ledger := &fakeLedger{
		estimateGas: func() (uint64, error) { return 21000, nil },
	}
	ledger.feeData = func() (*core.FeeData, error) {
		if ledger.feeDataCalls <= failures {
			return nil, &core.NetworkError{Err: errors.New("connection reset")}
		}

		return &core.FeeData{
			MaxFeePerGas:         big.NewInt(50),
			MaxPriorityFeePerGas: big.NewInt(2),
		}, nil
	}

	var slept []time.Duration
	svc := newTestService(ledger, &slept)

	if _, err := svc.Estimate(context.Background(), common.Address{}, common.Address{}, big.NewInt(1)); err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	if ledger.feeDataCalls != 3 {
		t.Errorf("fee data calls: got %d, want 3", ledger.feeDataCalls)
	}

	want := []time.Duration{time.Second, 2 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("sleeps: got %v, want %v", slept, want)
	}

	for i := range want {
		if slept[i] != want[i] {
			t.Errorf("sleep %d: got %v, want %v", i, slept[i], want[i])
		}
	}
}

func TestEstimateDoesNotRetryPermanentFailures(t *testing.T) {
	ledger := &fakeLedger{
		feeData: func() (*core.FeeData, error) {
			return nil, &core.InvalidRequestError{Err: errors.New("execution reverted")}
		},
		estimateGas: func() (uint64, error) { return 21000, nil },
	}

	var slept []time.Duration
	svc := newTestService(ledger, &slept)

	if _, err := svc.Estimate(context.Background(), common.Address{}, common.Address{}, big.NewInt(1)); err == nil {
		t.Fatal("expected error")
	}

	if ledger.feeDataCalls != 1 {
		t.Errorf("fee data calls: got %d, want 1", ledger.feeDataCalls)
	}

	if len(slept) != 0 {
		t.Errorf("unexpected retries: %v", slept)
	}
}

func TestEstimateTerminalErrors(t *testing.T) {
	testCases := []struct {
		name     string
		cause    error
		wantGas  bool
		maxCalls int
	}{
		{
			name:     "insufficient funds maps to gas funds",
			cause:    &core.NetworkError{Err: errors.New("insufficient funds for gas * price + value")},
			wantGas:  true,
			maxCalls: maxAttempts,
		},
		{
			name:     "generic failure stays generic",
			cause:    &core.NetworkError{Err: errors.New("connection refused")},
			wantGas:  false,
			maxCalls: maxAttempts,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := &fakeLedger{
				feeData: func() (*core.FeeData, error) {
					return nil, fmt.Errorf("fee data: %w", tc.cause)
				},
				estimateGas: func() (uint64, error) { return 21000, nil },
			}

			var slept []time.Duration
			svc := newTestService(ledger, &slept)

			_, err := svc.Estimate(context.Background(), common.Address{}, common.Address{}, big.NewInt(1))
			if err == nil {
				t.Fatal("expected error")
			}

			if got := errors.Is(err, core.ErrGasFunds); got != tc.wantGas {
				t.Errorf("ErrGasFunds: got %v, want %v", got, tc.wantGas)
			}

			if ledger.feeDataCalls != tc.maxCalls {
				t.Errorf("fee data calls: got %d, want %d", ledger.feeDataCalls, tc.maxCalls)
			}
		})
	}
}
