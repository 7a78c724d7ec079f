package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/domain"
	"github.com/kailas-cloud/vectorgate/internal/metrics"
	"github.com/kailas-cloud/vectorgate/internal/provider"
)

// retryConfig bounds retries of provider calls. Only transport errors and
// 5xx responses are retried; the adapters themselves never retry.
type retryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func defaultRetryConfig() retryConfig {
	return retryConfig{
		MaxRetries: 2,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}
}

func (c retryConfig) delay(attempt int) time.Duration {
	d := c.BaseDelay << attempt
	if d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// execute marshals and sends one provider request, returning the raw response
// for the adapter to parse. Non-2xx responses become a ProviderResponseError
// carrying the provider's status and headers.
func (s *Service) execute(
	ctx context.Context, providerName, operation string,
	req provider.Request, headers map[string]string,
) (provider.RawResponse, error) {
	payload, err := json.Marshal(req.Body)
	if err != nil {
		return provider.RawResponse{}, fmt.Errorf("encode %s request body: %w", providerName, err)
	}

	start := time.Now()
	raw, err := s.doWithRetry(ctx, providerName, operation, req, payload, headers)
	duration := time.Since(start)

	status := "error"
	if err == nil {
		status = strconv.Itoa(raw.StatusCode)
	}
	metrics.ProviderRequestsTotal.WithLabelValues(providerName, operation, status).Inc()
	metrics.ProviderRequestDuration.WithLabelValues(providerName, operation).Observe(duration.Seconds())

	if err != nil {
		return provider.RawResponse{}, fmt.Errorf("%s %s request: %w", providerName, operation, err)
	}

	// Error statuses never reach the parsers.
	if raw.StatusCode < http.StatusOK || raw.StatusCode >= http.StatusMultipleChoices {
		return provider.RawResponse{}, domain.NewProviderResponseError(
			fmt.Sprintf("%s %s returned status %d: %s",
				providerName, operation, raw.StatusCode, bodySnippet(raw.Body)),
			raw.StatusCode, raw.Header,
		)
	}
	return raw, nil
}

// bodySnippet bounds an error body for inclusion in a message.
func bodySnippet(body []byte) string {
	const maxLen = 512
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}

func (s *Service) doWithRetry(
	ctx context.Context, providerName, operation string,
	req provider.Request, payload []byte, headers map[string]string,
) (provider.RawResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= s.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.ProviderRetriesTotal.WithLabelValues(providerName, operation).Inc()
			select {
			case <-ctx.Done():
				return provider.RawResponse{}, ctx.Err()
			case <-time.After(s.retry.delay(attempt - 1)):
			}
		}

		raw, err := s.doOnce(ctx, req, payload, headers)
		if err != nil {
			lastErr = err
			s.logger.Warn("Provider request failed",
				zap.String("provider", providerName),
				zap.String("operation", operation),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		if raw.StatusCode >= http.StatusInternalServerError && attempt < s.retry.MaxRetries {
			lastErr = fmt.Errorf("provider returned status %d", raw.StatusCode)
			s.logger.Warn("Provider request retryable",
				zap.String("provider", providerName),
				zap.String("operation", operation),
				zap.Int("status", raw.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			continue
		}

		return raw, nil
	}

	return provider.RawResponse{}, lastErr
}

func (s *Service) doOnce(
	ctx context.Context, req provider.Request, payload []byte, headers map[string]string,
) (provider.RawResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(payload))
	if err != nil {
		return provider.RawResponse{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return provider.RawResponse{}, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.RawResponse{}, fmt.Errorf("read response body: %w", err)
	}

	return provider.RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
