package ga4

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/papai4576-cyber/shopify-ga4-mp/internal/metrics"
)

const (
	// DefaultBaseURL is the Google Analytics collection host.
	DefaultBaseURL = "https://www.google-analytics.com"

	// ClientTimeout is the total request timeout.
	ClientTimeout = 30 * time.Second
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 15 * time.Second

	// maxResponseBytes caps how much of the collector response is read.
	maxResponseBytes = 64 * 1024
)

// Endpoint labels reported back to the webhook caller.
const (
	EndpointLive  = "GA4"
	EndpointDebug = "GA4 DEBUG"
)

// ClientConfig configures a Measurement Protocol client.
type ClientConfig struct {
	MeasurementID string
	APISecret     string
	// Debug routes events to the validation endpoint instead of the
	// live collector.
	Debug bool
	// BaseURL overrides the collector host; empty means DefaultBaseURL.
	BaseURL string
	// HTTPClient overrides the default tuned client.
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    metrics.Recorder
}

// Client sends Measurement Protocol payloads to the GA4 collector.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    metrics.Recorder
	endpoint   string
	sentTo     string
}

// SendResult is the collector's answer to a single forwarded event.
// Non-2xx statuses are results, not errors: the caller surfaces the
// collector body verbatim either way.
type SendResult struct {
	SentTo     string
	StatusCode int
	Body       string
}

// NewClient creates a Client with the endpoint variant fixed at
// construction time by cfg.Debug.
func NewClient(cfg ClientConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	path, sentTo := "/mp/collect", EndpointLive
	if cfg.Debug {
		path, sentTo = "/debug/mp/collect", EndpointDebug
	}

	query := url.Values{}
	query.Set("measurement_id", cfg.MeasurementID)
	query.Set("api_secret", cfg.APISecret)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return &Client{
		httpClient: httpClient,
		logger:     logger.With("component", "ga4.client"),
		metrics:    recorder,
		endpoint:   base + path + "?" + query.Encode(),
		sentTo:     sentTo,
	}
}

// Send posts the payload as JSON and waits for the collector response.
// A transport-level failure returns an error; any HTTP status is
// returned as a SendResult.
func (c *Client) Send(ctx context.Context, payload *Payload) (*SendResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	c.metrics.ObserveForwardDuration(duration)
	if err != nil {
		c.metrics.IncForwardFailed()
		return nil, fmt.Errorf("send event: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.metrics.IncForwardFailed()
		return nil, fmt.Errorf("read collector response: %w", err)
	}

	c.metrics.IncEventForwarded(c.sentTo, resp.StatusCode)
	c.logger.Info("event forwarded",
		"sent_to", c.sentTo,
		"status_code", resp.StatusCode,
		"duration_ms", float64(duration.Microseconds())/1000,
	)

	return &SendResult{
		SentTo:     c.sentTo,
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}, nil
}

// NewHTTPClient creates an HTTP client configured for collector calls.
// It has appropriate timeouts and does not follow redirects.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: ClientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
