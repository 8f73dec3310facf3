package audit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fintamas01/geoaudit/internal/crawler"
	"github.com/fintamas01/geoaudit/internal/scoring"
)

type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) crawler.FetchResult {
	html, ok := f.pages[url]
	if !ok {
		return crawler.FetchResult{URL: url, Err: errors.New("no route to host")}
	}
	return crawler.FetchResult{
		URL:         url,
		OK:          true,
		Status:      200,
		ContentType: "text/html",
		Body:        []byte(html),
	}
}

// strongPage satisfies nearly every rubric check on a single page.
const strongPage = `<!DOCTYPE html>
<html>
<head>
	<title>Acme Bakery — Fresh Sourdough Bread, Budapest</title>
	<meta name="description" content="Family bakery baking sourdough bread and pastries in downtown Budapest since 1998, open every day.">
	<script type="application/ld+json">{"@type":"LocalBusiness","name":"Acme"}</script>
</head>
<body>
	<main>
		<h1>Fresh bread every morning</h1>
		<h2>Our sourdough</h2>
		<h2>Pastries and cakes</h2>
		<p>We are based in Budapest, at 1051 Budapest, Nádor utca 12.
		Write to hello@acme.example or call +36 1 234 5678.</p>
		<p>PLACEHOLDER</p>
		<a href="https://facebook.com/acme">fb</a>
		<a href="https://instagram.com/acme">ig</a>
		<a href="https://linkedin.com/company/acme">in</a>
	</main>
</body>
</html>`

func strongPageWithWords(words int) string {
	filler := strings.TrimSpace(strings.Repeat("bread ", words))
	return strings.Replace(strongPage, "PLACEHOLDER", filler, 1)
}

func TestRunStrongSiteScenario(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://acme.example": strongPageWithWords(700),
	}}
	runner := NewRunnerWithFetcher(Options{MaxPages: 1}, fetcher)

	result, err := runner.Run(context.Background(), "https://acme.example")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	total := result.ScoreBreakdown.Total
	if total < 85 || total > 100 {
		t.Errorf("strong site should land in [85,100], got %d", total)
	}
	if result.PagesCrawled != 1 {
		t.Errorf("expected 1 page, got %d", result.PagesCrawled)
	}
	if len(result.Evidence) != 1 {
		t.Errorf("expected evidence from the crawled page, got %d items", len(result.Evidence))
	}
	if result.TargetDomain != "acme.example" {
		t.Errorf("unexpected domain %q", result.TargetDomain)
	}
}

func TestRunEmptySiteScenario(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://thin.example": `<html><body><p>just a few words here, nothing else at all</p></body></html>`,
	}}
	runner := NewRunnerWithFetcher(Options{MaxPages: 3}, fetcher)

	result, err := runner.Run(context.Background(), "https://thin.example")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if total := result.ScoreBreakdown.Total; total > 15 {
		t.Errorf("near-empty site should score low, got %d", total)
	}
	for _, c := range result.ScoreBreakdown.Categories {
		if len(c.Notes) == 0 {
			t.Errorf("category %s should carry explanatory notes", c.Key)
		}
	}
}

func TestRunUnreachableSeedStillScores(t *testing.T) {
	runner := NewRunnerWithFetcher(Options{MaxPages: 5}, &fakeFetcher{})

	result, err := runner.Run(context.Background(), "https://unreachable.example")
	if err != nil {
		t.Fatalf("an unreachable seed must yield a result, not an error: %v", err)
	}

	if result.PagesCrawled != 0 {
		t.Errorf("expected zero pages, got %d", result.PagesCrawled)
	}
	if len(result.Evidence) != 0 {
		t.Errorf("expected no evidence, got %v", result.Evidence)
	}
	b := result.ScoreBreakdown
	if b.Total < 0 || b.Total > 15 {
		t.Errorf("empty crawl should produce a valid low score, got %d", b.Total)
	}
	if len(b.Categories) == 0 {
		t.Error("breakdown must still contain every category")
	}
}

func TestRunInvalidSeedURL(t *testing.T) {
	runner := NewRunnerWithFetcher(Options{}, &fakeFetcher{})

	if _, err := runner.Run(context.Background(), "ftp://nope"); !errors.Is(err, crawler.ErrInvalidSeedURL) {
		t.Errorf("expected ErrInvalidSeedURL, got %v", err)
	}
}

func TestRunScoreMatchesBreakdownSum(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://acme.example": strongPageWithWords(100),
	}}
	runner := NewRunnerWithFetcher(Options{MaxPages: 1}, fetcher)

	result, err := runner.Run(context.Background(), "https://acme.example")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	sum := 0
	for _, c := range result.ScoreBreakdown.Categories {
		sum += c.Score
	}
	if result.ScoreBreakdown.Total != sum {
		t.Errorf("total %d != sum %d", result.ScoreBreakdown.Total, sum)
	}
	if result.ScoreBreakdown.Total > scoring.MaxTotal {
		t.Errorf("total exceeds %d", scoring.MaxTotal)
	}
}

func TestWithMaxPagesOverride(t *testing.T) {
	base := NewRunnerWithFetcher(Options{MaxPages: 5}, &fakeFetcher{})

	override := base.WithMaxPages(2)
	if override.opts.MaxPages != 2 {
		t.Errorf("expected override to 2, got %d", override.opts.MaxPages)
	}
	if base.opts.MaxPages != 5 {
		t.Errorf("base runner must be unchanged, got %d", base.opts.MaxPages)
	}
	if same := base.WithMaxPages(0); same != base {
		t.Error("non-positive override should return the same runner")
	}
}
