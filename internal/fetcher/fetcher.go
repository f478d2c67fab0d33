// Package fetcher issues single HTTP GETs with browser-like headers and
// classifies every failure instead of propagating it.
package fetcher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"cticrawl/internal/domain"
)

// DefaultTimeout bounds every fetch; a timed-out fetch is a normal per-URL
// failure, never a run-level abort.
const DefaultTimeout = 10 * time.Second

// browserHeaders reduce trivial blocking by looking like a regular browser.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

// Fetcher performs one GET per URL. There are no retries at this layer;
// failures are final for the current crawl pass.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

func New(timeout time.Duration, logger *zap.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch retrieves rawURL and returns either its HTML body or a classified
// failure. Redirects are followed; only a final 2xx with a text/html content
// type counts as success. Non-HTML payloads (PDF, JSON, binary) are not
// crawlable content and are discarded here.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) domain.FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		f.logger.Warn("invalid URL", zap.String("url", rawURL), zap.Error(err))
		return domain.FetchResult{URL: rawURL, Reason: domain.FailConnection, Err: err}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		reason := domain.FailConnection
		if isTimeout(err) {
			reason = domain.FailTimeout
		}
		f.logger.Warn("failed to fetch",
			zap.String("url", rawURL),
			zap.String("reason", string(reason)),
			zap.Error(err))
		return domain.FetchResult{URL: rawURL, Reason: reason, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("non-2xx response",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		return domain.FetchResult{URL: rawURL, StatusCode: resp.StatusCode, Reason: domain.FailHTTPStatus}
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") {
		// Not an error, a filter outcome: PDFs linked directly are handled
		// by the separate downloader, never by the crawler itself.
		f.logger.Debug("skipping non-HTML content",
			zap.String("url", rawURL),
			zap.String("content_type", contentType))
		return domain.FetchResult{URL: rawURL, StatusCode: resp.StatusCode, Reason: domain.FailNotHTML}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		reason := domain.FailConnection
		if isTimeout(err) {
			reason = domain.FailTimeout
		}
		f.logger.Warn("failed to read response body", zap.String("url", rawURL), zap.Error(err))
		return domain.FetchResult{URL: rawURL, StatusCode: resp.StatusCode, Reason: reason, Err: err}
	}

	return domain.FetchResult{URL: rawURL, StatusCode: resp.StatusCode, Body: string(body)}
}

func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
