// Package network wraps net/http with per-host rate limiting and the error
// classification the locator and updater rely on.
package network

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/ytget/yt-dl/internal/apperr"
)

// Defaults used when Options leaves a field empty
const (
	DefaultTimeout         = 30 * time.Second
	DefaultPerHostInterval = time.Second
	DefaultUserAgent       = "yt-dl/1.0"
)

// HTTPError carries a non-200 response status.
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsRetryable reports whether the status is a server side failure.
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode >= 500
}

// Options configures a Client.
type Options struct {
	UserAgent       string
	Timeout         time.Duration
	PerHostInterval time.Duration
	Headers         map[string]string
}

// Client issues GET requests, waiting on a per-host limiter before each one.
type Client struct {
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
	interval   time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient creates a client from opts.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.PerHostInterval <= 0 {
		opts.PerHostInterval = DefaultPerHostInterval
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		userAgent:  opts.UserAgent,
		headers:    opts.Headers,
		interval:   opts.PerHostInterval,
		limiters:   make(map[string]*rate.Limiter),
	}
}

// Get fetches reqURL and returns the raw body.
func (c *Client) Get(ctx context.Context, reqURL string) ([]byte, error) {
	resp, err := c.do(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.NetworkFailure, "get", "failed to read response body", err)
	}
	return body, nil
}

// GetPage fetches an HTML page and returns its body decoded to UTF-8 using
// the charset declared by the response or the document.
func (c *Client) GetPage(ctx context.Context, reqURL string) (io.Reader, error) {
	resp, err := c.do(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.NetworkFailure, "get page", "failed to read response body", err)
	}

	r, err := charset.NewReader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		// unknown charset, hand back the raw bytes
		return bytes.NewReader(body), nil
	}
	return r, nil
}

// Download streams reqURL into dstPath and returns the number of bytes written.
// A partially written file is removed on failure.
func (c *Client) Download(ctx context.Context, reqURL, dstPath string) (int64, error) {
	resp, err := c.do(ctx, reqURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	f, err := os.Create(dstPath)
	if err != nil {
		if os.IsPermission(err) {
			return 0, apperr.Wrap(apperr.PermissionDenied, "download", "cannot write "+dstPath, err)
		}
		return 0, fmt.Errorf("failed to create %s: %w", dstPath, err)
	}

	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dstPath)
		return n, apperr.Wrap(apperr.NetworkFailure, "download", "transfer interrupted", err)
	}
	return n, nil
}

func (c *Client) do(ctx context.Context, reqURL string) (*http.Response, error) {
	parsedURL, err := url.Parse(reqURL)
	if err != nil || parsedURL.Host == "" {
		if err == nil {
			err = fmt.Errorf("missing host")
		}
		return nil, apperr.Wrap(apperr.InvalidInput, "request", "malformed URL "+reqURL, err)
	}

	if err := c.limiterFor(parsedURL.Hostname()).Wait(ctx); err != nil {
		return nil, apperr.Wrap(apperr.NetworkFailure, "request", "rate limiter wait aborted", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, "request", "malformed URL "+reqURL, err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.NetworkFailure, "request", "could not reach "+parsedURL.Host, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        reqURL,
			Message:    http.StatusText(resp.StatusCode),
		}
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			return nil, apperr.Wrap(apperr.NotFound, "request", "page not found", httpErr)
		}
		return nil, apperr.Wrap(apperr.NetworkFailure, "request", "unexpected response", httpErr)
	}
	return resp, nil
}

// limiterFor returns the limiter of host, creating it on first use.
func (c *Client) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if limiter, ok := c.limiters[host]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rate.Every(c.interval), 1)
	c.limiters[host] = limiter
	return limiter
}
