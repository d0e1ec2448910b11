// Package price maintains the cached native/USD exchange rate.
package price

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pandodao/fuji-wallet/core"
)

const (
	refreshInterval = 5 * time.Minute

	propertyRate = "exchange_rate"
)

func New(
	source core.QuoteSource,
	properties core.PropertyStore,
	logger *slog.Logger,
) *Cache {
	return &Cache{
		source:     source,
		properties: properties,
		logger:     logger.With("worker", "price"),
	}
}

// Cache holds the last successfully fetched exchange rate. Reads are
// non-blocking; a refresh failure keeps the previous value.
type Cache struct {
	source     core.QuoteSource
	properties core.PropertyStore
	logger     *slog.Logger

	mux  sync.RWMutex
	rate core.ExchangeRate
}

func (c *Cache) Rate() core.ExchangeRate {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return c.rate
}

// Run refreshes the rate once eagerly, then on a fixed interval until ctx
// is cancelled. Before the first fetch it warms up from the last persisted
// value so restarts do not serve a zero rate.
func (c *Cache) Run(ctx context.Context) error {
	c.logger.Info("price cache start")

	c.warmup(ctx)

	for {
		if err := c.refresh(ctx); err != nil {
			c.logger.Error("refresh", "err", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(refreshInterval):
		}
	}
}

func (c *Cache) warmup(ctx context.Context) {
	var rate core.ExchangeRate
	if err := c.properties.Get(ctx, propertyRate, &rate); err != nil {
		c.logger.Error("properties.Get", "err", err)
		return
	}

	if rate.Price.IsPositive() {
		c.mux.Lock()
		c.rate = rate
		c.mux.Unlock()
	}
}

func (c *Cache) refresh(ctx context.Context) error {
	value, err := c.source.Fetch(ctx)
	if err != nil {
		return err
	}

	rate := core.ExchangeRate{
		Price:     value,
		UpdatedAt: time.Now(),
	}

	c.mux.Lock()
	c.rate = rate
	c.mux.Unlock()

	if err := c.properties.Set(ctx, propertyRate, rate); err != nil {
		c.logger.Error("properties.Set", "err", err)
	}

	return nil
}
