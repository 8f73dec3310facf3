// Package evidence selects short verbatim quotes from crawled pages.
// The quotes ground the downstream language-model analysis: the contract
// enforced on that collaborator is "no factual claim about the site without
// a matching evidence entry".
package evidence

import (
	"strings"

	"github.com/fintamas01/geoaudit/internal/signals"
)

const (
	// MaxItems bounds how many pages contribute evidence.
	MaxItems = 6
	// MaxQuoteLen bounds each quote in runes.
	MaxQuoteLen = 300

	bodyTextMarker = "BODY_TEXT: "
)

// Item is one citable quote with its source page.
type Item struct {
	URL   string `json:"url"`
	Quote string `json:"quote"`
}

// Build selects at most MaxItems pages in crawl order and extracts a
// bounded quote from each page's extracted text. Pages are not re-ranked;
// the crawler's breadth-first order decides which evidence is surfaced.
func Build(pages []signals.PageSignals) []Item {
	var items []Item
	for _, p := range pages {
		if len(items) >= MaxItems {
			break
		}
		quote := quoteFrom(p.ExtractedText)
		if quote == "" {
			continue
		}
		items = append(items, Item{URL: p.URL, Quote: quote})
	}
	return items
}

// quoteFrom prefers the body-text section, with its marker prefix stripped.
// Pages without body text fall back to the leading extracted sections.
func quoteFrom(extracted string) string {
	if extracted == "" {
		return ""
	}
	text := extracted
	if idx := strings.Index(extracted, bodyTextMarker); idx >= 0 {
		text = extracted[idx+len(bodyTextMarker):]
	}
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > MaxQuoteLen {
		text = string(runes[:MaxQuoteLen])
	}
	return text
}
