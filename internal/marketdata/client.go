package marketdata

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"rizzk-go/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ClientInterface defines the interface for the public quote client.
type ClientInterface interface {
	GetTickerPrice(ctx context.Context, symbol string) (float64, error)
	Snapshot(ctx context.Context, symbols []string) ([]Quote, error)
}

// Quote is the latest traded price for a symbol.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// Client fetches quotes from a Binance-style public ticker endpoint. Only
// unauthenticated endpoints are used, so no keys or signing are involved.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new quote client.
func NewClient(cfg *config.MarketData, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.BaseURL)

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		logger:  logger,
		limiter: limiter,
	}
}

// tickerPrice represents the response for a single ticker price.
type tickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// GetTickerPrice fetches the latest price for one symbol.
func (c *Client) GetTickerPrice(ctx context.Context, symbol string) (float64, error) {
	var ticker tickerPrice

	req := c.client.R().
		SetQueryParam("symbol", symbol).
		SetResult(&ticker)

	resp, err := c.doRequest(ctx, "GET", "/ticker/price", req)
	if err != nil {
		return 0, fmt.Errorf("failed to get ticker price for %s: %w", symbol, err)
	}

	result := resp.Result().(*tickerPrice)
	price, err := strconv.ParseFloat(result.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q for %s: %w", result.Price, symbol, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("no usable price for %s", symbol)
	}

	return price, nil
}

// Snapshot fetches the latest prices for a watchlist of symbols. Symbols
// without a usable quote are skipped with a warning rather than failing
// the whole snapshot.
func (c *Client) Snapshot(ctx context.Context, symbols []string) ([]Quote, error) {
	var prices []*tickerPrice

	req := c.client.R().
		SetResult(&prices)

	resp, err := c.doRequest(ctx, "GET", "/ticker/price", req)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticker prices: %w", err)
	}

	result := resp.Result().(*[]*tickerPrice)
	priceMap := make(map[string]float64, len(*result))
	for _, p := range *result {
		if v, err := strconv.ParseFloat(p.Price, 64); err == nil {
			priceMap[p.Symbol] = v
		}
	}

	quotes := make([]Quote, 0, len(symbols))
	for _, symbol := range symbols {
		price, ok := priceMap[symbol]
		if !ok || price <= 0 {
			c.logger.Warn("No usable quote for symbol, skipping", zap.String("symbol", symbol))
			continue
		}
		quotes = append(quotes, Quote{Symbol: symbol, Price: price})
	}

	return quotes, nil
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.SetContext(ctx).Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil // Success
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil && resp.StatusCode() != 0 {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		// If we should retry, calculate wait time
		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}
