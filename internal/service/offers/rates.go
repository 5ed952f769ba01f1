package offers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RateProvider fetches the current USD conversion rate for a currency.
type RateProvider interface {
	USDRate(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// ExchangeRateClient queries a latest-USD exchange-rate endpoint.
type ExchangeRateClient struct {
	url        string
	httpClient *http.Client
	log        *zap.Logger
}

// NewExchangeRateClient builds a client against the given rates URL.
func NewExchangeRateClient(url string, timeout time.Duration, log *zap.Logger) *ExchangeRateClient {
	return &ExchangeRateClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// USDRate returns the latest USD to symbol rate.
func (c *ExchangeRateClient) USDRate(ctx context.Context, symbol string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("exchange rates: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode rates: %w", err)
	}

	rate, ok := payload.Rates[symbol]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("exchange rates: %s missing from response", symbol)
	}

	c.log.Debug("exchange rate fetched", zap.String("symbol", symbol), zap.Float64("rate", rate))
	return decimal.NewFromFloat(rate), nil
}
