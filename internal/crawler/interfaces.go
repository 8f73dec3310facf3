package crawler

import (
	"context"

	"github.com/fintamas01/geoaudit/internal/signals"
)

// Fetcher issues one HTTP GET per URL and reports a tri-state outcome.
// Failures are data, not errors: a non-2xx status or a network fault comes
// back inside the FetchResult so the crawl can continue over the rest of
// the frontier.
type Fetcher interface {
	Fetch(ctx context.Context, url string) FetchResult
}

// Extractor turns one fetched HTML document into page signals.
type Extractor interface {
	Extract(pageURL string, body []byte, contentType string) (*signals.PageSignals, error)
}

// FetchResult is the outcome of a single fetch attempt.
type FetchResult struct {
	URL         string
	OK          bool
	Status      int
	ContentType string
	Body        []byte
	Err         error
}

// Failure records a URL that consumed a frontier slot without producing a
// page record.
type Failure struct {
	URL    string `json:"url"`
	Status int    `json:"status,omitempty"`
	Reason string `json:"reason"`
}

// Result is the ordered outcome of one crawl. Pages appear in the order
// they were successfully fetched (FIFO frontier, breadth-first), which the
// evidence assembler relies on for its "first N pages" selection.
type Result struct {
	SeedURL      string                `json:"seedUrl"`
	TargetDomain string                `json:"targetDomain"`
	Pages        []signals.PageSignals `json:"pages"`
	Attempted    int                   `json:"attempted"`
	Failures     []Failure             `json:"failures,omitempty"`
}
