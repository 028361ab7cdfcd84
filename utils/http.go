package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
	"danawa-crawler/internal/types"
)

const minRetryWait = 100 * time.Millisecond

// HTTPClient provides HTTP functionality with rate limiting and retries
type HTTPClient struct {
	client  *resty.Client
	config  *types.Config
	logger  types.Logger
	limiter *rate.Limiter
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config *types.Config, logger types.Logger) *HTTPClient {
	retryWait := config.RequestDelay
	if retryWait < minRetryWait {
		retryWait = minRetryWait
	}

	h := &HTTPClient{
		config:  config,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(config.RequestDelay), 1),
	}

	h.client = resty.New().
		SetLogger(logger).
		SetTimeout(config.Timeout).
		SetRetryCount(config.MaxRetries).
		SetRetryWaitTime(retryWait).
		SetHeaders(map[string]string{
			"User-Agent":                config.UserAgent,
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language":           "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
			"Upgrade-Insecure-Requests": "1",
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			code := resp.StatusCode()
			return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
		}).
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			// every attempt, retries included, goes through the limiter
			if err := h.limiter.Wait(req.Context()); err != nil {
				return err
			}
			logger.Debugf("Making request to %s (attempt %d/%d)", req.URL, req.Attempt, config.MaxRetries+1)
			return nil
		})

	return h
}

// Get performs a GET request with rate limiting and retries
func (h *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := h.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// GetHTML fetches a page and decodes it to UTF-8 using the declared or sniffed charset
func (h *HTTPClient) GetHTML(ctx context.Context, url string) (string, error) {
	resp, err := h.get(ctx, url)
	if err != nil {
		return "", err
	}

	reader, err := charset.NewReader(bytes.NewReader(resp.Body()), resp.Header().Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to detect charset: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}
	return string(body), nil
}

func (h *HTTPClient) get(ctx context.Context, url string) (*resty.Response, error) {
	resp, err := h.client.R().SetContext(ctx).Get(url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("all retry attempts failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		h.logger.Warnf("Unexpected status code %d from %s", resp.StatusCode(), url)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	h.logger.Debugf("Successfully retrieved %d bytes from %s", len(resp.Body()), url)
	return resp, nil
}

// Close cleans up resources
func (h *HTTPClient) Close() {
	h.client.GetClient().CloseIdleConnections()
}
