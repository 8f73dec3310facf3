package crawler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultUserAgent identifies the auditor to site operators.
const DefaultUserAgent = "geoaudit/1.0 (+https://github.com/fintamas01/geoaudit)"

// maxBodySize caps how much of a response is read. Signal extraction never
// needs more than this, and it protects the audit from endless bodies.
const maxBodySize = 4 << 20 // 4MB

// HTTPFetcher fetches pages with a single GET per URL, a fixed descriptive
// User-Agent and no-cache semantics. One attempt per URL is policy: the
// crawl budget is bounded by page count, so retries would only make
// worst-case latency unpredictable.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout.
func NewHTTPFetcher(userAgent string, timeout time.Duration) *HTTPFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		userAgent: userAgent,
	}
}

// Fetch performs the single GET. The caller must pass an absolute,
// normalized URL; the crawler owns normalization.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return FetchResult{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FetchResult{URL: url, Status: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !isHTMLContentType(contentType) {
		return FetchResult{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return FetchResult{URL: url, Status: resp.StatusCode, Err: err}
	}

	return FetchResult{
		URL:         url,
		OK:          true,
		Status:      resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}
}

// Close releases idle connections.
func (f *HTTPFetcher) Close() {
	f.client.CloseIdleConnections()
}

func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.HasPrefix(ct, "text/html") ||
		strings.HasPrefix(ct, "application/xhtml+xml")
}
