package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crypto-price-service/internal/domain/model"
	"crypto-price-service/internal/metrics"
	"crypto-price-service/pkg/logger"
)

const (
	DefaultBaseURL      = "https://api.coingecko.com/api/v3"
	DefaultAPIKeyHeader = "x-cg-pro-api-key"

	// maxBodyBytes bounds how much of a provider response is read.
	maxBodyBytes = 1 << 20
)

type CoinGeckoOptions struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string
	UserAgent    string
	Timeout      time.Duration
}

// CoinGeckoAPI talks to a CoinGecko compatible /simple/price endpoint.
type CoinGeckoAPI struct {
	baseURL      string
	apiKey       string
	apiKeyHeader string
	userAgent    string
	httpClient   *http.Client
	log          *logger.Logger
	metrics      *metrics.Metrics
}

func NewCoinGeckoAPI(opts CoinGeckoOptions, log *logger.Logger, m *metrics.Metrics) *CoinGeckoAPI {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	header := opts.APIKeyHeader
	if header == "" {
		header = DefaultAPIKeyHeader
	}

	return &CoinGeckoAPI{
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(opts.APIKey),
		apiKeyHeader: header,
		userAgent:    opts.UserAgent,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		log:     log,
		metrics: m,
	}
}

// FetchSimplePrice requests one asset in one currency. Both are sent exactly
// as given. Transport failures, non-2xx statuses and undecodable bodies are
// returned as errors; an empty or partial body is not an error here.
func (c *CoinGeckoAPI) FetchSimplePrice(ctx context.Context, assetID, currency string) (model.SimplePriceResponse, error) {
	start := time.Now()
	resp, err := c.fetch(ctx, assetID, currency)
	c.metrics.ProviderRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.ProviderRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	c.metrics.ProviderRequestsTotal.WithLabelValues("success").Inc()
	return resp, nil
}

func (c *CoinGeckoAPI) fetch(ctx context.Context, assetID, currency string) (model.SimplePriceResponse, error) {
	q := url.Values{}
	q.Set("ids", assetID)
	q.Set("vs_currencies", currency)
	u := fmt.Sprintf("%s/simple/price?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiKey != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	c.log.Debug("Requesting price", "asset", assetID, "currency", currency)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("API rate limited: %d", resp.StatusCode)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("API returned non-OK status: %d", resp.StatusCode)
	}

	var apiResp model.SimplePriceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return apiResp, nil
}
