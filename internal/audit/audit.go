// Package audit runs the full GEO audit pipeline: crawl, signal
// aggregation, deterministic scoring and evidence assembly. The Result it
// produces is the grounding context handed to the external language-model
// collaborator; that collaborator must echo ScoreBreakdown.Total verbatim
// and may only add qualitative prose around it.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/fintamas01/geoaudit/internal/crawler"
	"github.com/fintamas01/geoaudit/internal/evidence"
	"github.com/fintamas01/geoaudit/internal/scoring"
	"github.com/fintamas01/geoaudit/internal/signals"
)

// Options control one audit run.
type Options struct {
	MaxPages      int           // clamped to the crawler's [1,10] budget
	FetchTimeout  time.Duration // per-request timeout
	CrawlDeadline time.Duration // overall wall-clock budget for the crawl
	Delay         time.Duration // politeness delay between fetches
	UserAgent     string
}

// DefaultOptions returns the settings used when the caller passes zero
// values.
func DefaultOptions() Options {
	return Options{
		MaxPages:      crawler.DefaultPages,
		FetchTimeout:  8 * time.Second,
		CrawlDeadline: 60 * time.Second,
		Delay:         200 * time.Millisecond,
		UserAgent:     crawler.DefaultUserAgent,
	}
}

// Result is the combined audit artifact. All entities are constructed
// fresh per request and never mutated afterwards; nothing persists across
// requests inside the pipeline.
type Result struct {
	URL            string                `json:"url"`
	TargetDomain   string                `json:"targetDomain"`
	ScoreBreakdown scoring.Breakdown     `json:"scoreBreakdown"`
	Evidence       []evidence.Item       `json:"evidence"`
	SiteSignals    signals.SiteSignals   `json:"siteSignals"`
	Pages          []signals.PageSignals `json:"pages"`
	Failures       []crawler.Failure     `json:"failures,omitempty"`
	PagesCrawled   int                   `json:"pagesCrawled"`
	AuditedAt      time.Time             `json:"auditedAt"`
	DurationMS     int64                 `json:"durationMs"`
}

// Runner owns the long-lived collaborators of the pipeline. Clients are
// injected at the application boundary, never package-level singletons,
// so the pipeline stays independently testable.
type Runner struct {
	opts    Options
	fetcher crawler.Fetcher
}

// NewRunner creates a runner using the real HTTP fetcher.
func NewRunner(opts Options) *Runner {
	applyDefaults(&opts)
	return &Runner{
		opts:    opts,
		fetcher: crawler.NewHTTPFetcher(opts.UserAgent, opts.FetchTimeout),
	}
}

// NewRunnerWithFetcher creates a runner with an injected fetcher.
func NewRunnerWithFetcher(opts Options, fetcher crawler.Fetcher) *Runner {
	applyDefaults(&opts)
	return &Runner{opts: opts, fetcher: fetcher}
}

// WithMaxPages returns a runner that shares this runner's collaborators
// but uses a different page budget. Used for per-request overrides.
func (r *Runner) WithMaxPages(n int) *Runner {
	if n <= 0 {
		return r
	}
	clone := *r
	clone.opts.MaxPages = n
	return &clone
}

// Run performs one audit of rawURL. A seed that never responds still
// yields a valid result: the scorer runs on the empty signal set and the
// returned (low) score is honestly labeled by its category notes. Run only
// fails on an unusable seed URL.
func (r *Runner) Run(ctx context.Context, rawURL string) (*Result, error) {
	start := time.Now()

	crawlCtx := ctx
	if r.opts.CrawlDeadline > 0 {
		var cancel context.CancelFunc
		crawlCtx, cancel = context.WithTimeout(ctx, r.opts.CrawlDeadline)
		defer cancel()
	}

	c := crawler.New(r.fetcher, signals.NewExtractor(), r.opts.Delay)
	crawlResult, err := c.Crawl(crawlCtx, rawURL, crawler.Config{
		MaxPages: r.opts.MaxPages,
	})
	if err != nil {
		return nil, err
	}

	site := signals.Aggregate(crawlResult.TargetDomain, crawlResult.Pages)
	breakdown := scoring.Score(site)
	items := evidence.Build(crawlResult.Pages)

	slog.Info("audit completed",
		"domain", crawlResult.TargetDomain,
		"pages", len(crawlResult.Pages),
		"total_score", breakdown.Total,
		"duration", time.Since(start))

	return &Result{
		URL:            crawlResult.SeedURL,
		TargetDomain:   crawlResult.TargetDomain,
		ScoreBreakdown: breakdown,
		Evidence:       items,
		SiteSignals:    site,
		Pages:          crawlResult.Pages,
		Failures:       crawlResult.Failures,
		PagesCrawled:   len(crawlResult.Pages),
		AuditedAt:      start.UTC(),
		DurationMS:     time.Since(start).Milliseconds(),
	}, nil
}

func applyDefaults(opts *Options) {
	def := DefaultOptions()
	if opts.MaxPages == 0 {
		opts.MaxPages = def.MaxPages
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = def.FetchTimeout
	}
	if opts.CrawlDeadline < 0 {
		opts.CrawlDeadline = 0
	} else if opts.CrawlDeadline == 0 {
		opts.CrawlDeadline = def.CrawlDeadline
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
}
