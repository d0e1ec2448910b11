package price

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/shopspring/decimal"
)

const coingeckoEndpoint = "https://api.coingecko.com/api/v3"

// CoinGecko fetches the simple price quote for a single coin.
func CoinGecko(coinID string) core.QuoteSource {
	return &coingecko{
		client: resty.New().SetBaseURL(coingeckoEndpoint),
		coinID: coinID,
	}
}

type coingecko struct {
	client *resty.Client
	coinID string
}

func (s *coingecko) Fetch(ctx context.Context) (decimal.Decimal, error) {
	var body map[string]struct {
		USD decimal.Decimal `json:"usd"`
	}

	r, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("ids", s.coinID).
		SetQueryParam("vs_currencies", "usd").
		SetResult(&body).
		Get("/simple/price")

	if err != nil {
		return decimal.Zero, &core.NetworkError{Err: err}
	}

	if r.IsError() {
		return decimal.Zero, &core.NetworkError{Err: fmt.Errorf("coingecko: status %s", r.Status())}
	}

	quote, ok := body[s.coinID]
	if !ok || !quote.USD.IsPositive() {
		return decimal.Zero, fmt.Errorf("coingecko: no quote for %s", s.coinID)
	}

	return quote.USD, nil
}
