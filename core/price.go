package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is replaced wholesale on each successful refresh.
type ExchangeRate struct {
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// QuoteSource fetches a single native/USD quote from an external feed.
type QuoteSource interface {
	Fetch(ctx context.Context) (decimal.Decimal, error)
}

// PriceService exposes the last cached exchange rate. Reads never block;
// the zero rate is returned before the first successful refresh.
type PriceService interface {
	Rate() ExchangeRate
}
