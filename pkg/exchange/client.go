package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gregtusar/marketlens/pkg/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Client is the upstream market data source consumed by the screener. All
// three operations are pull-based; streaming is deliberately out of scope.
type Client interface {
	FetchPairs(ctx context.Context) ([]models.TradingPair, error)
	FetchSummaries(ctx context.Context) ([]models.MarketSummary, error)
	FetchDepth(ctx context.Context, tickerID string) (*models.DepthSnapshot, error)
}

// HTTPClient talks to the exchange's public REST endpoints and runs every
// response through the Validator before handing records to callers.
type HTTPClient struct {
	baseURL    string
	depthLimit int
	httpClient *http.Client
	limiter    *rate.Limiter
	validator  *Validator
	logger     *logrus.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, rps float64, depthLimit int, logger *logrus.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	if depthLimit <= 0 {
		depthLimit = 100
	}
	return &HTTPClient{
		baseURL:    baseURL,
		depthLimit: depthLimit,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		validator:  NewValidator(logger),
		logger:     logger,
	}
}

func (c *HTTPClient) FetchPairs(ctx context.Context) ([]models.TradingPair, error) {
	var raw []PairPayload
	if err := c.doGet(ctx, "/api/v1/pairs", &raw); err != nil {
		return nil, err
	}
	return c.validator.Pairs(raw)
}

func (c *HTTPClient) FetchSummaries(ctx context.Context) ([]models.MarketSummary, error) {
	var raw []SummaryPayload
	if err := c.doGet(ctx, "/api/v1/summary", &raw); err != nil {
		return nil, err
	}
	return c.validator.Summaries(raw)
}

func (c *HTTPClient) FetchDepth(ctx context.Context, tickerID string) (*models.DepthSnapshot, error) {
	path := fmt.Sprintf("/api/v1/orderbook?ticker_id=%s&depth=%d", url.QueryEscape(tickerID), c.depthLimit)
	var raw DepthPayload
	if err := c.doGet(ctx, path, &raw); err != nil {
		return nil, err
	}
	return c.validator.Depth(tickerID, raw)
}

func (c *HTTPClient) doGet(ctx context.Context, path string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}
	req.Header.Set("User-Agent", "marketlens/1.0")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("Exchange request failed")
		return &TransportError{Op: "GET " + path, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		c.logger.WithFields(logrus.Fields{"path": path, "status": res.StatusCode}).Warn("Exchange returned non-2xx")
		return &TransportError{Op: "GET " + path, StatusCode: res.StatusCode}
	}

	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		return &TransportError{Op: "GET " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
