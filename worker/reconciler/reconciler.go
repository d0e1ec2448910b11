// Package reconciler aligns cached wallet balances with the ledger.
package reconciler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pandodao/fuji-wallet/core"
)

const sweepInterval = 10 * time.Second

func New(
	wallets core.WalletStore,
	ledger core.LedgerClient,
	sink core.NotificationSink,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		wallets: wallets,
		ledger:  ledger,
		sink:    sink,
		logger:  logger.With("worker", "reconciler"),
	}
}

type Reconciler struct {
	wallets core.WalletStore
	ledger  core.LedgerClient
	sink    core.NotificationSink
	logger  *slog.Logger
}

// Run sweeps once eagerly, then on a fixed interval until ctx is
// cancelled. Sweep errors are logged, never fatal.
func (w *Reconciler) Run(ctx context.Context) error {
	w.logger.Info("reconciler start")

	for {
		if err := w.run(ctx); err != nil {
			w.logger.Error("sweep", "err", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sweepInterval):
		}
	}
}

func (w *Reconciler) run(ctx context.Context) error {
	wallets, err := w.wallets.List(ctx)
	if err != nil {
		return err
	}

	for _, wallet := range wallets {
		// One unreachable wallet must not stall the sweep.
		if err := w.reconcile(ctx, wallet); err != nil {
			w.logger.Error("reconcile wallet", "wallet", wallet.ID, "address", wallet.Address, "err", err)
		}
	}

	return nil
}

func (w *Reconciler) reconcile(ctx context.Context, wallet *core.Wallet) error {
	balance, err := w.ledger.Balance(ctx, common.HexToAddress(wallet.Address))
	if err != nil {
		return err
	}

	fresh := core.FromWei(balance)
	if fresh.Equal(wallet.Balance) {
		return nil
	}

	w.logger.Info("balance changed",
		"wallet", wallet.ID,
		"address", wallet.Address,
		"old", wallet.Balance,
		"new", fresh,
	)

	if err := w.wallets.UpdateBalance(ctx, wallet.ID, fresh); err != nil {
		return err
	}

	w.sink.Publish(wallet.OwnerID, core.BalanceEvent{
		Type:      core.EventBalanceUpdate,
		WalletID:  wallet.ID,
		Balance:   fresh,
		Timestamp: time.Now().UTC(),
	})

	return nil
}
