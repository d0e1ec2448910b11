package ledger

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pandodao/fuji-wallet/core"
)

type Config struct {
	ChainID      int64 `valid:"required"`
	PollInterval time.Duration
}

func New(client *ethclient.Client, cfg Config) core.LedgerClient {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}

	return &service{
		client:  client,
		chainID: big.NewInt(cfg.ChainID),
		poll:    cfg.PollInterval,
	}
}

type service struct {
	client  *ethclient.Client
	chainID *big.Int
	poll    time.Duration
}

func (s *service) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

func (s *service) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	balance, err := s.client.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, classify(err)
	}

	return balance, nil
}

func (s *service) FeeData(ctx context.Context) (*core.FeeData, error) {
	tip, err := s.client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, classify(err)
	}

	head, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, classify(err)
	}

	if head.BaseFee == nil {
		return nil, core.ErrNoFeeData
	}

	// maxFeePerGas = 2 × baseFee + tip, the quote shape wallets expect.
	maxFee := new(big.Int).Mul(head.BaseFee, big.NewInt(2))
	maxFee.Add(maxFee, tip)

	return &core.FeeData{
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: tip,
	}, nil
}

func (s *service) EstimateGas(ctx context.Context, from, to common.Address, amount *big.Int) (uint64, error) {
	gas, err := s.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: amount,
	})
	if err != nil {
		return 0, classify(err)
	}

	return gas, nil
}

func (s *service) Nonce(ctx context.Context, address common.Address) (uint64, error) {
	nonce, err := s.client.PendingNonceAt(ctx, address)
	if err != nil {
		return 0, classify(err)
	}

	return nonce, nil
}

func (s *service) Submit(ctx context.Context, tx *types.Transaction) error {
	if err := s.client.SendTransaction(ctx, tx); err != nil {
		return classify(err)
	}

	return nil
}

func (s *service) WaitConfirmed(ctx context.Context, hash common.Hash, confirmations uint64) (*core.Receipt, error) {
	if confirmations < 1 {
		confirmations = 1
	}

	t := time.NewTicker(s.poll)
	defer t.Stop()

	for {
		if receipt := s.checkConfirmed(ctx, hash, confirmations); receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, core.ErrTransactionTimeout
			}

			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

// checkConfirmed returns the receipt once it has enough confirmations.
// Transient poll failures just leave the loop running.
func (s *service) checkConfirmed(ctx context.Context, hash common.Hash, confirmations uint64) *core.Receipt {
	receipt, err := s.client.TransactionReceipt(ctx, hash)
	if err != nil || receipt == nil {
		return nil
	}

	head, err := s.client.BlockNumber(ctx)
	if err != nil {
		return nil
	}

	included := receipt.BlockNumber.Uint64()
	if head < included || head-included+1 < confirmations {
		return nil
	}

	return &core.Receipt{
		TxHash:      hash,
		BlockNumber: included,
		GasUsed:     receipt.GasUsed,
		Succeeded:   receipt.Status == types.ReceiptStatusSuccessful,
	}
}

// classify sorts ledger failures into the retryable and permanent buckets.
// A JSON-RPC response error means the node understood and rejected the
// request; everything else is transport trouble.
func classify(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &core.InvalidRequestError{Err: err}
	}

	return &core.NetworkError{Err: err}
}
