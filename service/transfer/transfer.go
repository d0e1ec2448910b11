// Package transfer orchestrates signed value transfers against the
// ledger: recipient resolution, best-effort prefunding, fee estimation,
// sufficiency validation, serialized submission and bounded confirmation.
package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Config struct {
	// LevyAddress is the fixed collection address for levy payments.
	LevyAddress       string `valid:"required"`
	Confirmations     uint64
	LevyConfirmations uint64
	ConfirmTimeout    time.Duration
}

func New(
	wallets core.WalletStore,
	users core.UserStore,
	transactions core.TransactionStore,
	ledger core.LedgerClient,
	fees core.FeeEstimator,
	faucet core.Faucet,
	logger *slog.Logger,
	cfg Config,
) core.TransferService {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	if !common.IsHexAddress(cfg.LevyAddress) {
		panic(fmt.Sprintf("invalid levy address %q", cfg.LevyAddress))
	}

	if cfg.Confirmations == 0 {
		cfg.Confirmations = 2
	}

	if cfg.LevyConfirmations == 0 {
		cfg.LevyConfirmations = 1
	}

	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 30 * time.Second
	}

	return &service{
		wallets:      wallets,
		users:        users,
		transactions: transactions,
		ledger:       ledger,
		fees:         fees,
		faucet:       faucet,
		logger:       logger.With("service", "transfer"),
		cfg:          cfg,
		locks:        map[string]*sync.Mutex{},
	}
}

type service struct {
	wallets      core.WalletStore
	users        core.UserStore
	transactions core.TransactionStore
	ledger       core.LedgerClient
	fees         core.FeeEstimator
	faucet       core.Faucet
	logger       *slog.Logger
	cfg          Config

	sf singleflight.Group

	// locks serialize nonce-fetch/sign/submit per sender address. Two
	// concurrent sends reading the same nonce would produce conflicting
	// signed transactions.
	mux   sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *service) Send(ctx context.Context, input *core.SendInput) (*core.SendResult, error) {
	if input.TraceID == "" {
		input.TraceID = uuid.NewString()
	}

	v, err, _ := s.sf.Do(input.TraceID, func() (any, error) {
		return s.send(ctx, input)
	})

	if err != nil {
		return nil, err
	}

	return v.(*core.SendResult), nil
}

func (s *service) send(ctx context.Context, input *core.SendInput) (*core.SendResult, error) {
	logger := s.logger.With("trace", input.TraceID)

	if !input.Amount.IsPositive() {
		return nil, &core.InvalidRequestError{Err: fmt.Errorf("invalid amount %s", input.Amount)}
	}

	if prev, err := s.transactions.FindTrace(ctx, input.TraceID); err == nil {
		logger.Debug("trace already handled", "status", prev.Status)
		return resultFromRecord(prev)
	}

	sender, err := s.wallets.FindOwner(ctx, input.OwnerID, input.WalletID)
	if err != nil {
		return nil, fmt.Errorf("sender wallet: %w", err)
	}

	to, toOwner, err := s.resolveRecipient(ctx, input)
	if err != nil {
		return nil, err
	}

	from := common.HexToAddress(sender.Address)

	// Best-effort top-up; a dry faucet never fails the send.
	if _, err := s.faucet.Drip(ctx, from); err != nil {
		logger.Warn("faucet drip failed", "err", err)
	}

	amountWei := core.ToWei(input.Amount)

	fee, err := s.fees.Estimate(ctx, from, to, amountWei)
	if err != nil {
		return nil, err
	}

	logger.Info("fees estimated",
		"gas_limit", fee.GasLimit,
		"max_fee_per_gas", fee.MaxFeePerGas,
		"total", core.FromWei(fee.Total),
	)

	record := &core.Transaction{
		TraceID:   input.TraceID,
		FromOwner: input.OwnerID,
		ToOwner:   toOwner,
		Amount:    input.Amount,
		Kind:      core.TransactionKindTransfer,
		Status:    core.TransactionStatusPending,
		Meta:      core.TransactionMeta{Note: input.Note},
	}

	if input.UseAddress {
		record.Meta.RecipientAddress = to.Hex()
	}

	hash, err := s.submitLocked(ctx, sender, to, amountWei, fee, record, true)
	if err != nil {
		return nil, err
	}

	return s.awaitAndFinalize(ctx, logger, record, hash, s.cfg.Confirmations)
}

// PayLevy is the simplified fixed-destination variant: sufficiency is
// checked against the cached balance only, fees are quoted once without
// the retry loop, and a single confirmation suffices.
func (s *service) PayLevy(ctx context.Context, ownerID string, amount decimal.Decimal) (*core.SendResult, error) {
	logger := s.logger.With("owner", ownerID, "kind", "levy")

	if !amount.IsPositive() {
		return nil, &core.InvalidRequestError{Err: fmt.Errorf("invalid amount %s", amount)}
	}

	wallet, err := s.wallets.FindOwnerKind(ctx, ownerID, core.WalletKindDaily)
	if err != nil {
		return nil, fmt.Errorf("daily wallet: %w", err)
	}

	if wallet.Balance.LessThan(amount) {
		return nil, &core.InsufficientFundsError{
			Amount:         amount,
			TotalRequired:  amount,
			CurrentBalance: wallet.Balance,
		}
	}

	from := common.HexToAddress(wallet.Address)
	to := common.HexToAddress(s.cfg.LevyAddress)
	amountWei := core.ToWei(amount)

	fee, err := s.quoteOnce(ctx, from, to, amountWei)
	if err != nil {
		return nil, err
	}

	record := &core.Transaction{
		TraceID:   uuid.NewString(),
		FromOwner: ownerID,
		ToOwner:   ownerID,
		Amount:    amount,
		Kind:      core.TransactionKindLevy,
		Status:    core.TransactionStatusPending,
	}

	hash, err := s.submitLocked(ctx, wallet, to, amountWei, fee, record, false)
	if err != nil {
		return nil, err
	}

	return s.awaitAndFinalize(ctx, logger, record, hash, s.cfg.LevyConfirmations)
}

func (s *service) resolveRecipient(ctx context.Context, input *core.SendInput) (common.Address, string, error) {
	if input.UseAddress {
		if !common.IsHexAddress(input.Recipient) {
			return common.Address{}, "", &core.InvalidRequestError{Err: fmt.Errorf("invalid recipient address %q", input.Recipient)}
		}

		return common.HexToAddress(input.Recipient), "", nil
	}

	user, err := s.users.FindHandle(ctx, input.Recipient)
	if err != nil {
		return common.Address{}, "", fmt.Errorf("recipient: %w", err)
	}

	wallet, err := s.wallets.FindOwnerKind(ctx, user.ID, core.WalletKindDaily)
	if err != nil {
		return common.Address{}, "", fmt.Errorf("recipient wallet: %w", err)
	}

	return common.HexToAddress(wallet.Address), user.ID, nil
}

// quoteOnce runs the fee math a single time, bypassing the estimator's
// retry policy.
func (s *service) quoteOnce(ctx context.Context, from, to common.Address, amountWei *big.Int) (*core.FeeEstimate, error) {
	feeData, err := s.ledger.FeeData(ctx)
	if err != nil {
		return nil, fmt.Errorf("fee data: %w", err)
	}

	gas, err := s.ledger.EstimateGas(ctx, from, to, amountWei)
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	gasLimit := (gas*120 + 99) / 100

	return &core.FeeEstimate{
		GasLimit:             gasLimit,
		MaxFeePerGas:         feeData.MaxFeePerGas,
		MaxPriorityFeePerGas: feeData.MaxPriorityFeePerGas,
		Total:                new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), feeData.MaxFeePerGas),
	}, nil
}

// submitLocked performs the balance/nonce fetch, sufficiency validation,
// signing and broadcast under the sender's lock, and writes the pending
// record before returning.
func (s *service) submitLocked(
	ctx context.Context,
	sender *core.Wallet,
	to common.Address,
	amountWei *big.Int,
	fee *core.FeeEstimate,
	record *core.Transaction,
	checkLedgerBalance bool,
) (common.Hash, error) {
	lock := s.addrLock(sender.Address)
	lock.Lock()
	defer lock.Unlock()

	from := common.HexToAddress(sender.Address)

	var (
		balance *big.Int
		nonce   uint64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balance, err = s.ledger.Balance(gctx, from)
		return err
	})
	g.Go(func() error {
		var err error
		nonce, err = s.ledger.Nonce(gctx, from)
		return err
	})

	if err := g.Wait(); err != nil {
		return common.Hash{}, fmt.Errorf("balance/nonce: %w", err)
	}

	if checkLedgerBalance {
		required := new(big.Int).Add(amountWei, fee.Total)
		if balance.Cmp(required) < 0 {
			return common.Hash{}, &core.InsufficientFundsError{
				Amount:         core.FromWei(amountWei),
				EstimatedGas:   core.FromWei(fee.Total),
				TotalRequired:  core.FromWei(required),
				CurrentBalance: core.FromWei(balance),
			}
		}
	}

	signer, err := s.wallets.SignerOf(ctx, sender.Address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("signer: %w", err)
	}

	// Every field is pinned here so a ledger-side re-estimation can never
	// change what was validated.
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.ledger.ChainID(),
		Nonce:     nonce,
		GasTipCap: fee.MaxPriorityFeePerGas,
		GasFeeCap: fee.MaxFeePerGas,
		Gas:       fee.GasLimit,
		To:        &to,
		Value:     amountWei,
	})

	signed, err := signer.SignTx(tx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign: %w", err)
	}

	if err := s.ledger.Submit(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("submit: %w", err)
	}

	hash := signed.Hash()
	record.Meta.TxHash = hash.Hex()

	s.logger.Info("transaction submitted",
		"trace", record.TraceID,
		"hash", hash.Hex(),
		"nonce", nonce,
		"gas_limit", fee.GasLimit,
	)

	if err := s.transactions.Create(ctx, record); err != nil {
		// Already broadcast; the reconciler will surface the balance move
		// even though the record is lost.
		s.logger.Error("record create failed", "trace", record.TraceID, "err", err)
	}

	return hash, nil
}

// awaitAndFinalize races the confirmation wait against the configured
// deadline. A timeout leaves the record pending: the outcome is unknown
// and must never be recorded as failed.
func (s *service) awaitAndFinalize(
	ctx context.Context,
	logger *slog.Logger,
	record *core.Transaction,
	hash common.Hash,
	confirmations uint64,
) (*core.SendResult, error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.ConfirmTimeout)
	defer cancel()

	receipt, err := s.ledger.WaitConfirmed(waitCtx, hash, confirmations)
	if err != nil {
		logger.Warn("confirmation wait ended", "hash", hash.Hex(), "err", err)
		return nil, err
	}

	meta := record.Meta
	meta.BlockNumber = receipt.BlockNumber
	meta.GasUsed = receipt.GasUsed

	if !receipt.Succeeded {
		if err := s.transactions.Finalize(ctx, record.ID, core.TransactionStatusFailed, meta); err != nil {
			logger.Error("record finalize failed", "err", err)
		}

		return nil, core.ErrTransactionFailed
	}

	if err := s.transactions.Finalize(ctx, record.ID, core.TransactionStatusCompleted, meta); err != nil {
		logger.Error("record finalize failed", "err", err)
	}

	return &core.SendResult{
		TxHash:      hash.Hex(),
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
	}, nil
}

func (s *service) addrLock(address string) *sync.Mutex {
	s.mux.Lock()
	defer s.mux.Unlock()

	lock, ok := s.locks[address]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[address] = lock
	}

	return lock
}

func resultFromRecord(tx *core.Transaction) (*core.SendResult, error) {
	switch tx.Status {
	case core.TransactionStatusCompleted:
		return &core.SendResult{
			TxHash:      tx.Meta.TxHash,
			BlockNumber: tx.Meta.BlockNumber,
			GasUsed:     tx.Meta.GasUsed,
		}, nil
	case core.TransactionStatusFailed:
		return nil, core.ErrTransactionFailed
	default:
		return nil, core.ErrTransactionTimeout
	}
}
