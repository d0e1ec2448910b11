// Package faucet tops up test-network wallets. Every operation here is
// best-effort; callers log failures and move on.
package faucet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-resty/resty/v2"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

// dripThreshold skips the faucet when the wallet already holds enough.
var dripThreshold = decimal.NewFromFloat(0.1)

type Config struct {
	Endpoint string `valid:"url,required"`
	Chain    string `valid:"required"`
}

type Service struct {
	ledger  core.LedgerClient
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	cfg     Config
}

func New(ledger core.LedgerClient, logger *slog.Logger, cfg Config) core.Faucet {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "faucet",
		Interval: 10 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Service{
		ledger:  ledger,
		client:  resty.New().SetBaseURL(cfg.Endpoint).SetTimeout(15 * time.Second),
		breaker: breaker,
		logger:  logger.With("service", "faucet"),
		cfg:     cfg,
	}
}

// Drip requests test funds for the address when its ledger balance is
// below the threshold. Returns true when a faucet request was made.
func (s *Service) Drip(ctx context.Context, address common.Address) (bool, error) {
	balance, err := s.ledger.Balance(ctx, address)
	if err != nil {
		return false, fmt.Errorf("balance: %w", err)
	}

	if core.FromWei(balance).GreaterThanOrEqual(dripThreshold) {
		return false, nil
	}

	s.logger.Info("low balance, requesting faucet drip", "address", address.Hex())

	_, err = s.breaker.Execute(func() (any, error) {
		return nil, s.drip(ctx, address)
	})

	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *Service) drip(ctx context.Context, address common.Address) error {
	r, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"address": address.Hex(),
			"chain":   s.cfg.Chain,
		}).
		Post("/api/v1/drip")

	if err != nil {
		return &core.NetworkError{Err: err}
	}

	if r.IsError() {
		return &core.NetworkError{Err: fmt.Errorf("faucet: status %s", r.Status())}
	}

	return nil
}
