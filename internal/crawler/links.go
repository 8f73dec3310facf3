package crawler

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// assetExtensions are path suffixes that never contain crawlable HTML.
var assetExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico",
	".pdf", ".zip", ".rar", ".gz", ".tar",
	".mp3", ".mp4", ".avi", ".mov", ".webm", ".wav",
	".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".css", ".js", ".woff", ".woff2", ".ttf", ".eot",
}

// NormalizeDomain reduces a hostname to the form used for on-domain
// membership tests: lowercased, "www." prefix stripped.
func NormalizeDomain(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// NormalizeURL strips the trailing slash so /about and /about/ collapse to
// one frontier entry, and drops fragments.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.TrimSuffix(rawURL, "/")
	}
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/")
}

// IsSameDomain reports whether rawURL is on targetDomain or one of its
// subdomains. The suffix test requires a dot boundary so look-alike hosts
// such as example.com.evil.net are rejected.
func IsSameDomain(rawURL, targetDomain string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := NormalizeDomain(u.Hostname())
	return host == targetDomain || strings.HasSuffix(host, "."+targetDomain)
}

// DiscoverLinks returns the same-domain, non-asset, non-anchor hyperlinks
// of a page, resolved against the page's own URL and normalized for dedup.
// Order of first appearance in the document is preserved.
func DiscoverLinks(pageURL string, body []byte, targetDomain string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var links []string
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		switch {
		case href == "":
			return
		case strings.HasPrefix(href, "#"):
			return
		case hasExcludedScheme(href):
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if !IsSameDomain(resolved.String(), targetDomain) {
			return
		}
		if isAssetPath(resolved.Path) {
			return
		}

		normalized := NormalizeURL(resolved.String())
		if _, ok := seen[normalized]; ok {
			return
		}
		seen[normalized] = struct{}{}
		links = append(links, normalized)
	})

	return links
}

func hasExcludedScheme(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "javascript:")
}

func isAssetPath(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	if ext == "" {
		return false
	}
	for _, asset := range assetExtensions {
		if ext == asset {
			return true
		}
	}
	return false
}
