// Package scoring converts aggregated site signals into a deterministic,
// capped GEO score with per-category breakdowns. Score is the one fully
// reproducible step of the audit: identical input always produces identical
// output, byte for byte, so the number can be trusted and displayed even
// when the downstream language-model step fails or is skipped.
package scoring

import (
	"fmt"

	"github.com/fintamas01/geoaudit/internal/signals"
)

// Category keys, in rubric evaluation order.
const (
	CategoryStructuredData = "structured_data"
	CategoryMeta           = "meta"
	CategoryHeadings       = "headings"
	CategoryContact        = "contact"
	CategoryGeo            = "geo"
	CategorySocial         = "social"
	CategoryTextVolume     = "text_volume"
)

// MaxTotal is the ceiling for the summed score.
const MaxTotal = 100

// Thresholds used by the rubric.
const (
	minTitleLen    = 10
	minMetaDescLen = 50

	wordsFull    = 600
	wordsPartial = 300
	wordsMinimal = 120
)

// CategoryScore is one rubric category result. Notes explain every missed
// sub-check (and some passed ones) in rubric evaluation order.
type CategoryScore struct {
	Key   string   `json:"key"`
	Score int      `json:"score"`
	Max   int      `json:"max"`
	Notes []string `json:"notes"`
}

// Breakdown is the scorer output: ordered categories plus their clamped sum.
type Breakdown struct {
	Categories []CategoryScore `json:"categories"`
	Total      int             `json:"total"`
}

// Category returns the named category, or a zero value if absent.
func (b Breakdown) Category(key string) CategoryScore {
	for _, c := range b.Categories {
		if c.Key == key {
			return c
		}
	}
	return CategoryScore{}
}

// Score maps site signals to the rubric. Pure function; it never fails,
// even on an all-default SiteSignals from a crawl where nothing succeeded —
// that case simply yields an honestly low score with explanatory notes.
func Score(site signals.SiteSignals) Breakdown {
	categories := []CategoryScore{
		scoreStructuredData(site),
		scoreMeta(site),
		scoreHeadings(site),
		scoreContact(site),
		scoreGeo(site),
		scoreSocial(site),
		scoreTextVolume(site),
	}

	total := 0
	for i := range categories {
		categories[i].Score = clamp(categories[i].Score, 0, categories[i].Max)
		total += categories[i].Score
	}

	return Breakdown{
		Categories: categories,
		Total:      clamp(total, 0, MaxTotal),
	}
}

func scoreStructuredData(site signals.SiteSignals) CategoryScore {
	c := CategoryScore{Key: CategoryStructuredData, Max: 20}

	if site.HasJSONLD {
		c.Score += 12
		c.note("JSON-LD structured data present")
	} else {
		c.note("no JSON-LD structured data found")
	}

	if len(site.JSONLDTypes) > 0 {
		c.Score += 6
		c.note("schema.org types declared: %d", len(site.JSONLDTypes))
	} else {
		c.note("no schema.org @type values found")
	}

	if site.HasMicrodata {
		c.Score += 2
		c.note("microdata markup present")
	} else {
		c.note("no microdata markup found")
	}

	return c
}

func scoreMeta(site signals.SiteSignals) CategoryScore {
	c := CategoryScore{Key: CategoryMeta, Max: 20}

	if len(site.Title) >= minTitleLen {
		c.Score += 6
		c.note("title present (%d chars)", len(site.Title))
	} else {
		c.note("title missing or shorter than %d chars", minTitleLen)
	}

	if len(site.MetaDescription) >= minMetaDescLen {
		c.Score += 8
		c.note("meta description present (%d chars)", len(site.MetaDescription))
	} else {
		c.note("meta description missing or shorter than %d chars", minMetaDescLen)
	}

	if site.HasOpenGraph {
		c.Score += 3
	} else {
		c.note("no Open Graph markup found")
	}

	if site.HasTwitterCard {
		c.Score += 3
	} else {
		c.note("no Twitter Card markup found")
	}

	return c
}

func scoreHeadings(site signals.SiteSignals) CategoryScore {
	c := CategoryScore{Key: CategoryHeadings, Max: 15}

	if site.HasH1 {
		c.Score += 10
	} else {
		c.note("no H1 heading found on any page")
	}

	if site.HasH2 {
		c.Score += 5
	} else {
		// Missing H2 alone is weak structure, not failure.
		c.note("no H2 headings found, page structure is flat")
	}

	return c
}

func scoreContact(site signals.SiteSignals) CategoryScore {
	c := CategoryScore{Key: CategoryContact, Max: 15}

	if len(site.FoundEmails) > 0 {
		c.Score += 6
	} else {
		c.note("no email address found in page text")
	}

	if len(site.FoundPhones) > 0 {
		c.Score += 5
	} else {
		c.note("no phone number found in page text")
	}

	if site.HasContactPage {
		c.Score += 4
	} else {
		c.note("no contact or about page discovered")
	}

	return c
}

func scoreGeo(site signals.SiteSignals) CategoryScore {
	c := CategoryScore{Key: CategoryGeo, Max: 10}

	if len(site.GeoLikeSentences) > 0 {
		c.Score += 5
	} else {
		c.note("no geographic location mentions found")
	}

	if len(site.AddressLikeSentences) > 0 {
		c.Score += 5
	} else {
		c.note("no street address found in page text")
	}

	return c
}

func scoreSocial(site signals.SiteSignals) CategoryScore {
	c := CategoryScore{Key: CategorySocial, Max: 10}

	switch n := len(site.SocialLinks); {
	case n >= 3:
		c.Score += 10
		c.note("%d social profiles linked", n)
	case n >= 1:
		c.Score += 6
		c.note("only %d social profile(s) linked", n)
	default:
		c.note("no social profile links found")
	}

	return c
}

func scoreTextVolume(site signals.SiteSignals) CategoryScore {
	c := CategoryScore{Key: CategoryTextVolume, Max: 10}

	// Thin sites get a floor credit instead of zero: low text volume is a
	// weakness to report, not a catastrophic failure.
	switch avg := site.AverageWordCount; {
	case avg >= wordsFull:
		c.Score += 10
	case avg >= wordsPartial:
		c.Score += 7
		c.note("average word count %d is below %d", avg, wordsFull)
	case avg >= wordsMinimal:
		c.Score += 4
		c.note("average word count %d is low", avg)
	default:
		c.Score += 1
		c.note("very little text content, average word count %d", avg)
	}

	return c
}

func (c *CategoryScore) note(format string, args ...any) {
	c.Notes = append(c.Notes, fmt.Sprintf(format, args...))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
