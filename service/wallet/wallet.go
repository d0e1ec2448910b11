package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pandodao/fuji-wallet/core"
)

type Config struct {
	// Currency is the ticker attached to every wallet, e.g. AVAX.
	Currency string `valid:"required"`
}

func New(
	wallets core.WalletStore,
	ledger core.LedgerClient,
	faucet core.Faucet,
	price core.PriceService,
	logger *slog.Logger,
	cfg Config,
) core.WalletService {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &service{
		wallets:  wallets,
		ledger:   ledger,
		faucet:   faucet,
		price:    price,
		logger:   logger.With("service", "wallet"),
		currency: cfg.Currency,
	}
}

type service struct {
	wallets  core.WalletStore
	ledger   core.LedgerClient
	faucet   core.Faucet
	price    core.PriceService
	logger   *slog.Logger
	currency string
}

// Create provisions a fresh on-chain account: generate the key, attempt an
// initial faucet drip, snapshot the starting balance and persist. The
// secret never leaves the store.
func (s *service) Create(ctx context.Context, input core.CreateWalletInput) (*core.Wallet, error) {
	if !input.Kind.Valid() || input.Kind == core.WalletKindDaily {
		return nil, &core.InvalidRequestError{Err: fmt.Errorf("wallet kind %q not allowed", input.Kind)}
	}

	if input.Name == "" {
		return nil, &core.InvalidRequestError{Err: fmt.Errorf("wallet name required")}
	}

	secret, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	address := crypto.PubkeyToAddress(secret.PublicKey)

	s.logger.Info("wallet created", "owner", input.OwnerID, "address", address.Hex(), "kind", input.Kind)

	if _, err := s.faucet.Drip(ctx, address); err != nil {
		s.logger.Warn("faucet drip failed", "address", address.Hex(), "err", err)
	}

	balance, err := s.ledger.Balance(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("initial balance: %w", err)
	}

	wallet := &core.Wallet{
		OwnerID:  input.OwnerID,
		Name:     input.Name,
		Kind:     input.Kind,
		Address:  address.Hex(),
		Balance:  core.FromWei(balance),
		Currency: s.currency,
	}

	if err := s.wallets.Create(ctx, wallet, secret); err != nil {
		return nil, fmt.Errorf("store wallet: %w", err)
	}

	return wallet, nil
}

// List returns the owner's wallets with balances refreshed from the
// ledger best-effort and the fiat value from the cached rate attached.
func (s *service) List(ctx context.Context, ownerID string) ([]*core.WalletView, error) {
	wallets, err := s.wallets.ListOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	rate := s.price.Rate()

	views := make([]*core.WalletView, 0, len(wallets))
	for _, wallet := range wallets {
		s.refreshBalance(ctx, wallet)

		views = append(views, &core.WalletView{
			Wallet:     wallet,
			USDBalance: wallet.Balance.Mul(rate.Price),
		})
	}

	return views, nil
}

func (s *service) refreshBalance(ctx context.Context, wallet *core.Wallet) {
	balance, err := s.ledger.Balance(ctx, common.HexToAddress(wallet.Address))
	if err != nil {
		s.logger.Warn("balance refresh failed", "wallet", wallet.ID, "err", err)
		return
	}

	fresh := core.FromWei(balance)
	if fresh.Equal(wallet.Balance) {
		return
	}

	if err := s.wallets.UpdateBalance(ctx, wallet.ID, fresh); err != nil {
		s.logger.Warn("balance update failed", "wallet", wallet.ID, "err", err)
		return
	}

	wallet.Balance = fresh
}
