package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"stock-strategy-lab/internal/observability"
)

// Client fetches quotes from an HTTP market-data provider. Calls are rate
// limited, wrapped in a circuit breaker, and retried on transient failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	retryDelay time.Duration
}

// ClientConfig holds provider client configuration.
type ClientConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec float64
	Burst          int
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultClientConfig returns conservative provider settings.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL:        baseURL,
		RequestTimeout: 10 * time.Second,
		RequestsPerSec: 5,
		Burst:          5,
		MaxRetries:     3,
		RetryDelay:     time.Second,
	}
}

// NewClient creates a provider client.
func NewClient(cfg ClientConfig) *Client {
	settings := gobreaker.Settings{
		Name:     "marketdata",
		Interval: 60 * time.Second,
		Timeout:  60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// barsResponse is the provider envelope for daily bars.
type barsResponse struct {
	Code int      `json:"code"`
	Msg  string   `json:"msg"`
	Data []*Quote `json:"data"`
}

// earningsResponse is the provider envelope for quarterly earnings.
type earningsResponse struct {
	Code int                `json:"code"`
	Msg  string             `json:"msg"`
	Data map[string]float64 `json:"data"`
}

// DailyBars implements Source.
func (c *Client) DailyBars(ctx context.Context, code, start, end string) ([]*Quote, error) {
	q := url.Values{}
	q.Set("code", code)
	q.Set("start", start)
	q.Set("end", end)

	var resp barsResponse
	if err := c.getJSON(ctx, "/daily", q, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 200 {
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, resp.Msg)
	}
	if len(resp.Data) == 0 {
		return nil, ErrNoData
	}
	return resp.Data, nil
}

// QuarterlyEarnings implements Source. Missing earnings are not an error;
// the enrichment step degrades to estimates.
func (c *Client) QuarterlyEarnings(ctx context.Context, code string, startYear, endYear int) (map[string]float64, error) {
	q := url.Values{}
	q.Set("code", code)
	q.Set("startYear", fmt.Sprint(startYear))
	q.Set("endYear", fmt.Sprint(endYear))

	var resp earningsResponse
	if err := c.getJSON(ctx, "/earnings", q, &resp); err != nil {
		return nil, err
	}
	if resp.Code != 200 {
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, resp.Msg)
	}
	return resp.Data, nil
}

// getJSON performs a rate-limited GET with retries, decoding into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			observability.RecordProviderRetry()
			log.Warn().Str("path", path).Int("attempt", attempt+1).Err(lastErr).
				Msg("retrying provider request")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		started := time.Now()
		_, err := c.breaker.Execute(func() (any, error) {
			return nil, c.doRequest(ctx, path, query, out)
		})
		if err == nil {
			observability.RecordProviderCall(path, "success", time.Since(started).Seconds())
			return nil
		}
		observability.RecordProviderCall(path, "error", time.Since(started).Seconds())
		lastErr = err
	}
	return fmt.Errorf("%w: %v", ErrProviderFailure, lastErr)
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ Source = (*Client)(nil)
