package reconciler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/shopspring/decimal"
)

type fakeWallets struct {
	core.WalletStore

	wallets []*core.Wallet
	updates map[uint64]decimal.Decimal
}

func (f *fakeWallets) List(ctx context.Context) ([]*core.Wallet, error) {
	return f.wallets, nil
}

func (f *fakeWallets) UpdateBalance(ctx context.Context, id uint64, balance decimal.Decimal) error {
	f.updates[id] = balance
	return nil
}

type fakeLedger struct {
	core.LedgerClient

	balances map[string]*big.Int
}

func (f *fakeLedger) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	balance, ok := f.balances[address.Hex()]
	if !ok {
		return nil, &core.NetworkError{Err: errors.New("node unreachable")}
	}

	return balance, nil
}

type fakeSink struct {
	events map[string][]core.BalanceEvent
}

func (f *fakeSink) Register(ownerID string, ch core.Channel)   {}
func (f *fakeSink) Unregister(ownerID string, ch core.Channel) {}

func (f *fakeSink) Publish(ownerID string, event any) {
	f.events[ownerID] = append(f.events[ownerID], event.(core.BalanceEvent))
}

func TestSweep(t *testing.T) {
	one := decimal.NewFromInt(1)
	two := decimal.NewFromInt(2)

	wallets := &fakeWallets{
		wallets: []*core.Wallet{
			{ID: 1, OwnerID: "u1", Address: "0x00000000000000000000000000000000000000A1", Balance: one},
			{ID: 2, OwnerID: "u2", Address: "0x00000000000000000000000000000000000000A2", Balance: one},
			{ID: 3, OwnerID: "u3", Address: "0x00000000000000000000000000000000000000A3", Balance: one},
		},
		updates: map[uint64]decimal.Decimal{},
	}

	// Wallet 2 is unreachable; wallet 3 is unchanged.
	ledger := &fakeLedger{balances: map[string]*big.Int{
		"0x00000000000000000000000000000000000000A1": core.ToWei(two),
		"0x00000000000000000000000000000000000000A3": core.ToWei(one),
	}}

	sink := &fakeSink{events: map[string][]core.BalanceEvent{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w := New(wallets, ledger, sink, logger)

	if err := w.run(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(wallets.updates) != 1 {
		t.Fatalf("updates: got %v, want one for wallet 1", wallets.updates)
	}

	if got := wallets.updates[1]; !got.Equal(two) {
		t.Errorf("wallet 1 balance: got %s, want 2", got)
	}

	events := sink.events["u1"]
	if len(events) != 1 {
		t.Fatalf("events for u1: got %d, want 1", len(events))
	}

	event := events[0]
	if event.Type != core.EventBalanceUpdate || event.WalletID != 1 || !event.Balance.Equal(two) {
		t.Errorf("unexpected event: %+v", event)
	}

	if len(sink.events["u2"]) != 0 || len(sink.events["u3"]) != 0 {
		t.Errorf("unexpected events: %v", sink.events)
	}
}
