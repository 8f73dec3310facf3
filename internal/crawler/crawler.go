// Package crawler performs the bounded breadth-first crawl of one target
// site. A FIFO frontier seeded with the normalized root URL is drained
// sequentially: link discovery for page N needs page N fetched first, and
// with a budget of at most ten pages the simplicity is worth more than
// pipelined throughput.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// Budget and frontier bounds.
const (
	MinPages     = 1
	MaxPages     = 10
	DefaultPages = 5

	// DefaultMaxLinksPerPage bounds enqueues per page so a link-dense page
	// cannot explode the frontier.
	DefaultMaxLinksPerPage = 40
)

// ErrInvalidSeedURL is returned when the seed URL cannot be parsed into an
// absolute http(s) URL.
var ErrInvalidSeedURL = errors.New("invalid seed URL")

// Config holds per-crawl settings. Zero values fall back to safe defaults;
// MaxPages is clamped into [MinPages, MaxPages].
type Config struct {
	MaxPages        int
	MaxLinksPerPage int
	Delay           time.Duration
}

// SiteCrawler orchestrates fetcher, extractor and link discovery over the
// frontier. The visited set and frontier are owned by a single Crawl call;
// nothing is shared across audits.
type SiteCrawler struct {
	fetcher   Fetcher
	extractor Extractor
	limiter   *RateLimiter
}

// New creates a site crawler from its collaborators. Both are injected so
// tests can run the full loop against a fake fetcher.
func New(fetcher Fetcher, extractor Extractor, delay time.Duration) *SiteCrawler {
	return &SiteCrawler{
		fetcher:   fetcher,
		extractor: extractor,
		limiter:   NewRateLimiter(delay),
	}
}

// Crawl walks the site starting at seedURL until the page budget is spent,
// the frontier is empty or ctx is cancelled. Fetch failures consume their
// frontier slot but not the budget; the affected URL is never retried.
// A crawl where zero pages succeed is not an error here — the caller
// scores the empty signal set and reports honestly.
func (c *SiteCrawler) Crawl(ctx context.Context, seedURL string, cfg Config) (*Result, error) {
	seed, targetDomain, err := prepareSeed(seedURL)
	if err != nil {
		return nil, err
	}

	budget := clampPages(cfg.MaxPages)
	maxLinks := cfg.MaxLinksPerPage
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinksPerPage
	}

	result := &Result{
		SeedURL:      seed,
		TargetDomain: targetDomain,
	}

	frontier := []string{seed}
	visited := make(map[string]struct{})

	for len(frontier) > 0 && len(result.Pages) < budget {
		if err := ctx.Err(); err != nil {
			slog.Info("crawl stopped early", "reason", err, "pages", len(result.Pages))
			break
		}

		current := frontier[0]
		frontier = frontier[1:]

		// Visited is checked at dequeue, not enqueue: duplicate frontier
		// entries are cheap, duplicate fetches are not.
		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}
		result.Attempted++

		if err := c.limiter.Wait(ctx, current); err != nil {
			break
		}

		res := c.fetcher.Fetch(ctx, current)
		if !res.OK {
			result.Failures = append(result.Failures, fetchFailure(res))
			slog.Debug("fetch failed", "url", current, "status", res.Status, "error", res.Err)
			continue
		}

		page, err := c.extractor.Extract(current, res.Body, res.ContentType)
		if err != nil {
			result.Failures = append(result.Failures, Failure{URL: current, Reason: err.Error()})
			slog.Debug("extraction failed", "url", current, "error", err)
			continue
		}
		page.HTTPStatus = res.Status
		result.Pages = append(result.Pages, *page)
		slog.Debug("page crawled", "url", current, "words", page.WordCount)

		enqueued := 0
		for _, link := range DiscoverLinks(current, res.Body, targetDomain) {
			if enqueued >= maxLinks {
				break
			}
			if _, ok := visited[link]; ok {
				continue
			}
			frontier = append(frontier, link)
			enqueued++
		}
	}

	slog.Info("crawl finished",
		"domain", targetDomain,
		"pages", len(result.Pages),
		"attempted", result.Attempted,
		"failures", len(result.Failures))

	return result, nil
}

// prepareSeed normalizes the seed URL (https:// defaulted when the scheme
// is missing) and derives the target domain from it.
func prepareSeed(seedURL string) (seed, targetDomain string, err error) {
	raw := strings.TrimSpace(seedURL)
	if raw == "" {
		return "", "", ErrInvalidSeedURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidSeedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidSeedURL, seedURL)
	}

	return NormalizeURL(u.String()), NormalizeDomain(u.Hostname()), nil
}

func clampPages(n int) int {
	if n == 0 {
		return DefaultPages
	}
	if n < MinPages {
		return MinPages
	}
	if n > MaxPages {
		return MaxPages
	}
	return n
}

func fetchFailure(res FetchResult) Failure {
	f := Failure{URL: res.URL, Status: res.Status}
	switch {
	case res.Err != nil:
		f.Reason = res.Err.Error()
	case res.Status != 0:
		f.Reason = fmt.Sprintf("http status %d", res.Status)
	default:
		f.Reason = "not html"
	}
	return f
}
