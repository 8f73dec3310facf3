package signals

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Extractor parses one HTML document into a PageSignals record. The
// document is parsed exactly once; every signal reads from that single
// parse.
type Extractor struct{}

// NewExtractor creates a signal extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// bodyCandidateSelectors is the ordered list of containers tried for main
// content. The longest normalized text wins, which approximates "main
// content" without a full readability pass. <body> is the fallback.
var bodyCandidateSelectors = []string{
	"main",
	"article",
	"[role=main]",
	"#content",
	".content",
	"body",
}

// Extract parses the HTML body fetched from pageURL and returns its
// signals. contentType is used for charset detection; pass "" when unknown.
func (e *Extractor) Extract(pageURL string, body []byte, contentType string) (*PageSignals, error) {
	utf8Body, err := decodeToUTF8(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("charset decode: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8Body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	ps := &PageSignals{
		URL:        pageURL,
		FetchOK:    true,
		HTTPStatus: 200,
	}

	ps.Title = NormalizeWhitespace(doc.Find("title").First().Text())
	ps.MetaDescription = NormalizeWhitespace(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))

	ps.H1 = headingTexts(doc, "h1")
	ps.H2 = headingTexts(doc, "h2")
	ps.H3 = headingTexts(doc, "h3")

	e.extractStructuredData(doc, utf8Body, ps)
	e.extractSocialMarkup(doc, ps)
	e.extractLinkRels(doc, ps)
	ps.SocialLinks = e.extractSocialLinks(doc, pageURL)

	// Non-visible subtrees are dropped before body-text extraction so
	// script payloads never count as content. Everything above reads from
	// the intact document.
	doc.Find("script,style,noscript,svg").Remove()

	bodyText := e.extractBodyText(doc)
	ps.RawBodyTextLength = len(bodyText)
	ps.WordCount = CountWords(bodyText)

	ps.FoundEmails = ExtractEmails(bodyText)
	ps.FoundPhones = ExtractPhones(bodyText)
	ps.AddressLikeSentences = ExtractAddressSentences(bodyText)
	ps.GeoLikeSentences = ExtractGeoSentences(bodyText)

	ps.ExtractedText = composeExtractedText(ps, bodyText)

	return ps, nil
}

// decodeToUTF8 converts the response body to UTF-8 using the declared or
// sniffed charset. Already-valid UTF-8 passes through on decoder failure.
func decodeToUTF8(body []byte, contentType string) ([]byte, error) {
	enc, _, _ := charset.DetermineEncoding(body, contentType)
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		if utf8.Valid(body) {
			return body, nil
		}
		return nil, err
	}
	return decoded, nil
}

func headingTexts(doc *goquery.Document, tag string) []string {
	var out []string
	doc.Find(tag).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := NormalizeWhitespace(s.Text()); text != "" {
			out = append(out, text)
		}
		return len(out) < MaxHeadingsPerLevel
	})
	return out
}

func (e *Extractor) extractStructuredData(doc *goquery.Document, rawBody []byte, ps *PageSignals) {
	seen := make(map[string]struct{})
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		ps.HasJSONLD = true
		collectJSONLDTypes(s.Text(), seen, &ps.JSONLDTypes)
	})

	ps.HasMicrodata = doc.Find("[itemscope]").Length() > 0 ||
		bytes.Contains(rawBody, []byte("schema.org"))
}

func (e *Extractor) extractSocialMarkup(doc *goquery.Document, ps *PageSignals) {
	ps.HasOpenGraph = doc.Find(`meta[property^="og:"]`).Length() > 0
	ps.HasTwitterCard = doc.Find(`meta[name^="twitter:"]`).Length() > 0
}

func (e *Extractor) extractLinkRels(doc *goquery.Document, ps *PageSignals) {
	ps.CanonicalURL = NormalizeWhitespace(doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""))

	seen := make(map[string]struct{})
	doc.Find(`link[rel="alternate"][hreflang]`).Each(func(_ int, s *goquery.Selection) {
		lang := NormalizeWhitespace(s.AttrOr("hreflang", ""))
		if lang == "" {
			return
		}
		if _, ok := seen[lang]; ok {
			return
		}
		seen[lang] = struct{}{}
		ps.Hreflangs = append(ps.Hreflangs, lang)
	})
}

// extractSocialLinks resolves every anchor against the page's own URL, not
// the crawl root, so relative links on deep pages resolve correctly.
func (e *Extractor) extractSocialLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref).String()
		if !IsSocialLink(abs) {
			return true
		}
		if _, ok := seen[abs]; ok {
			return true
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
		return len(out) < MaxSocialLinksPerPage
	})
	return out
}

func (e *Extractor) extractBodyText(doc *goquery.Document) string {
	best := ""
	for _, selector := range bodyCandidateSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := NormalizeWhitespace(sel.Text())
		if len(text) > len(best) {
			best = text
		}
	}
	return best
}

// composeExtractedText builds the compact LLM-facing text: marked sections
// for title, meta description, headings and body text, capped so the token
// cost downstream stays bounded. This field is the only one handed to the
// evidence step; the raw HTML never leaves the extractor.
func composeExtractedText(ps *PageSignals, bodyText string) string {
	var b strings.Builder

	if ps.Title != "" {
		b.WriteString("TITLE: ")
		b.WriteString(ps.Title)
		b.WriteString("\n")
	}
	if ps.MetaDescription != "" {
		b.WriteString("META_DESCRIPTION: ")
		b.WriteString(ps.MetaDescription)
		b.WriteString("\n")
	}

	headings := make([]string, 0, len(ps.H1)+len(ps.H2)+len(ps.H3))
	headings = append(headings, ps.H1...)
	headings = append(headings, ps.H2...)
	headings = append(headings, ps.H3...)
	if len(headings) > 0 {
		b.WriteString("HEADINGS: ")
		b.WriteString(strings.Join(headings, " | "))
		b.WriteString("\n")
	}

	if bodyText != "" {
		b.WriteString("BODY_TEXT: ")
		b.WriteString(bodyText)
	}

	return truncate(b.String(), MaxExtractedTextLen)
}
