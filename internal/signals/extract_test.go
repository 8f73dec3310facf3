package signals

import (
	"reflect"
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head>
	<title>  Acme   Bakery — Fresh Bread in Budapest  </title>
	<meta name="description" content="Family bakery baking sourdough bread and pastries in downtown Budapest since 1998.">
	<meta property="og:title" content="Acme Bakery">
	<meta name="twitter:card" content="summary">
	<link rel="canonical" href="https://acme.example/">
	<link rel="alternate" hreflang="en" href="https://acme.example/en">
	<link rel="alternate" hreflang="hu" href="https://acme.example/hu">
	<script type="application/ld+json">
	{"@context":"https://schema.org","@type":"LocalBusiness","name":"Acme Bakery"}
	</script>
	<script type="application/ld+json">{invalid json</script>
	<script type="application/ld+json">
	{"@graph":[{"@type":"Organization"},{"@type":["WebSite","CreativeWork"]}]}
	</script>
	<style>body { color: red; }</style>
</head>
<body itemscope itemtype="https://schema.org/Bakery">
	<script>var hidden = "should not count as text";</script>
	<main>
		<h1>Fresh bread, every morning</h1>
		<h2>Our sourdough</h2>
		<h2>Pastries</h2>
		<h3>Opening hours</h3>
		<p>We are a family bakery based in Budapest. Find us at 1051 Budapest,
		Nádor utca 12. Call +36 1 234 5678 or write to hello@acme.example.</p>
		<a href="/about">About us</a>
		<a href="https://www.facebook.com/acmebakery">Facebook</a>
		<a href="https://instagram.com/acmebakery">Instagram</a>
	</main>
	<noscript>Enable JavaScript please</noscript>
</body>
</html>`

func mustExtract(t *testing.T, pageURL, html string) *PageSignals {
	t.Helper()
	ps, err := NewExtractor().Extract(pageURL, []byte(html), "text/html; charset=utf-8")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return ps
}

func TestExtractMetadata(t *testing.T) {
	ps := mustExtract(t, "https://acme.example/", samplePage)

	if ps.Title != "Acme Bakery — Fresh Bread in Budapest" {
		t.Errorf("unexpected title %q", ps.Title)
	}
	if !strings.HasPrefix(ps.MetaDescription, "Family bakery") {
		t.Errorf("unexpected meta description %q", ps.MetaDescription)
	}
	if ps.CanonicalURL != "https://acme.example/" {
		t.Errorf("unexpected canonical %q", ps.CanonicalURL)
	}
	if !reflect.DeepEqual(ps.Hreflangs, []string{"en", "hu"}) {
		t.Errorf("unexpected hreflangs %v", ps.Hreflangs)
	}
	if !ps.HasOpenGraph {
		t.Error("expected Open Graph markup to be detected")
	}
	if !ps.HasTwitterCard {
		t.Error("expected Twitter Card markup to be detected")
	}
}

func TestExtractHeadings(t *testing.T) {
	ps := mustExtract(t, "https://acme.example/", samplePage)

	if !reflect.DeepEqual(ps.H1, []string{"Fresh bread, every morning"}) {
		t.Errorf("unexpected H1 %v", ps.H1)
	}
	if !reflect.DeepEqual(ps.H2, []string{"Our sourdough", "Pastries"}) {
		t.Errorf("unexpected H2 %v", ps.H2)
	}
	if !reflect.DeepEqual(ps.H3, []string{"Opening hours"}) {
		t.Errorf("unexpected H3 %v", ps.H3)
	}
}

func TestExtractHeadingsCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 12; i++ {
		b.WriteString("<h2>Heading</h2>")
	}
	b.WriteString("</body></html>")

	ps := mustExtract(t, "https://acme.example/", b.String())
	if len(ps.H2) != MaxHeadingsPerLevel {
		t.Errorf("expected %d capped H2s, got %d", MaxHeadingsPerLevel, len(ps.H2))
	}
}

func TestExtractJSONLDResilience(t *testing.T) {
	// One valid block, one malformed block, one @graph block. The
	// malformed one must be skipped without spoiling the others.
	ps := mustExtract(t, "https://acme.example/", samplePage)

	if !ps.HasJSONLD {
		t.Fatal("expected JSON-LD to be detected")
	}
	expected := []string{"LocalBusiness", "Organization", "WebSite", "CreativeWork"}
	if !reflect.DeepEqual(ps.JSONLDTypes, expected) {
		t.Errorf("expected types %v, got %v", expected, ps.JSONLDTypes)
	}
	if !ps.HasMicrodata {
		t.Error("expected microdata (itemscope) to be detected")
	}
}

func TestExtractBodyTextSkipsNonVisible(t *testing.T) {
	ps := mustExtract(t, "https://acme.example/", samplePage)

	body := ps.ExtractedText
	if strings.Contains(body, "should not count as text") {
		t.Error("script content leaked into extracted text")
	}
	if strings.Contains(body, "Enable JavaScript") {
		t.Error("noscript content leaked into extracted text")
	}
	if strings.Contains(body, "color: red") {
		t.Error("style content leaked into extracted text")
	}
	if !strings.Contains(body, "family bakery based in Budapest") {
		t.Error("main content missing from extracted text")
	}
}

func TestExtractContactAndGeoSignals(t *testing.T) {
	ps := mustExtract(t, "https://acme.example/", samplePage)

	if !reflect.DeepEqual(ps.FoundEmails, []string{"hello@acme.example"}) {
		t.Errorf("unexpected emails %v", ps.FoundEmails)
	}
	if len(ps.FoundPhones) != 1 {
		t.Errorf("expected one phone, got %v", ps.FoundPhones)
	}
	if len(ps.AddressLikeSentences) == 0 {
		t.Error("expected an address-like sentence")
	}
	if len(ps.GeoLikeSentences) == 0 {
		t.Error("expected a geo-like sentence")
	}
}

func TestExtractSocialLinksResolvedAgainstPage(t *testing.T) {
	html := `<html><body>
		<a href="https://www.facebook.com/acme">fb</a>
		<a href="//instagram.com/acme">ig</a>
		<a href="/not-social">internal</a>
	</body></html>`

	ps := mustExtract(t, "https://acme.example/deep/page", html)
	expected := []string{"https://www.facebook.com/acme", "https://instagram.com/acme"}
	if !reflect.DeepEqual(ps.SocialLinks, expected) {
		t.Errorf("expected %v, got %v", expected, ps.SocialLinks)
	}
}

func TestExtractedTextSectionsAndCap(t *testing.T) {
	ps := mustExtract(t, "https://acme.example/", samplePage)

	if !strings.HasPrefix(ps.ExtractedText, "TITLE: ") {
		t.Errorf("extracted text should start with the title section: %q", ps.ExtractedText)
	}
	if !strings.Contains(ps.ExtractedText, "BODY_TEXT: ") {
		t.Error("extracted text should contain the body text section")
	}

	long := "<html><body><main>" + strings.Repeat("word ", 3000) + "</main></body></html>"
	psLong := mustExtract(t, "https://acme.example/", long)
	if got := len([]rune(psLong.ExtractedText)); got > MaxExtractedTextLen+1 {
		t.Errorf("extracted text exceeds cap: %d runes", got)
	}
	if !strings.HasSuffix(psLong.ExtractedText, "…") {
		t.Error("truncated text should end with an ellipsis marker")
	}
}

func TestExtractEmptyPage(t *testing.T) {
	ps := mustExtract(t, "https://acme.example/", "<html><head></head><body></body></html>")

	if ps.Title != "" || ps.MetaDescription != "" {
		t.Error("empty page should have no title or description")
	}
	if ps.HasJSONLD || ps.HasMicrodata || ps.HasOpenGraph || ps.HasTwitterCard {
		t.Error("empty page should have no structured or social markup")
	}
	if ps.WordCount != 0 {
		t.Errorf("expected zero words, got %d", ps.WordCount)
	}
}

func TestExtractWordCountFromBody(t *testing.T) {
	html := `<html><body><main><p>one two three four five</p></main></body></html>`
	ps := mustExtract(t, "https://acme.example/", html)
	if ps.WordCount != 5 {
		t.Errorf("expected 5 words, got %d", ps.WordCount)
	}
	if ps.RawBodyTextLength == 0 {
		t.Error("expected non-zero body text length")
	}
}
