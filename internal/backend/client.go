package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"salesdash/internal/logger"
	"salesdash/internal/metrics"
)

const (
	MetricRequests = "backend_requests_total"
	MetricFailures = "backend_failures_total"
)

// Client talks to the sales REST backend. It never retries; the caller's
// context bounds every call together with the client timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	requests   *metrics.Counter
	failures   *metrics.Counter
}

func NewClient(baseURL string, timeout time.Duration, reg *metrics.Registry) *Client {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requests: reg.Counter(MetricRequests),
		failures: reg.Counter(MetricFailures),
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "backend"),
		zap.String("http_method", method),
		zap.String("path", path),
	)
	timer := metrics.StartTimer()
	c.requests.Inc()

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			c.failures.Inc()
			log.Error("failed to marshal request", zap.Error(err))
			return fmt.Errorf("%w: %w", ErrEncodeRequest, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.failures.Inc()
		log.Error("failed creating request", zap.Error(err))
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.failures.Inc()
		log.Error("backend request failed", zap.Error(err), zap.Duration("duration", timer.Duration()))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.failures.Inc()
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.failures.Inc()
		apiErr := newAPIError(resp.StatusCode, raw)
		log.Warn("backend returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
			zap.Duration("duration", timer.Duration()),
		)
		return apiErr
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			c.failures.Inc()
			log.Error("failed decoding response", zap.Error(err))
			return fmt.Errorf("%w: %s %s: %w", ErrDecodeResponse, method, path, err)
		}
	}

	log.Debug("backend call completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", timer.Duration()),
	)
	return nil
}
