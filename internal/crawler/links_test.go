package crawler

import (
	"reflect"
	"testing"
)

func TestDiscoverLinksFiltering(t *testing.T) {
	html := `<html><body>
		<a href="#top">Top</a>
		<a href="mailto:a@b.com">Mail</a>
		<a href="tel:+3612345678">Call</a>
		<a href="javascript:void(0)">JS</a>
		<a href="/page.pdf">Brochure</a>
		<a href="https://other.com/page">External</a>
		<a href="/about/">About</a>
		<a href="">Empty</a>
	</body></html>`

	links := DiscoverLinks("https://example.com/", []byte(html), "example.com")
	expected := []string{"https://example.com/about"}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("expected %v, got %v", expected, links)
	}
}

func TestDiscoverLinksResolvesAgainstPageURL(t *testing.T) {
	html := `<html><body><a href="sibling">Sibling</a></body></html>`

	links := DiscoverLinks("https://example.com/docs/intro", []byte(html), "example.com")
	expected := []string{"https://example.com/docs/sibling"}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("relative links must resolve against the page URL, got %v", links)
	}
}

func TestDiscoverLinksDedup(t *testing.T) {
	html := `<html><body>
		<a href="/about">One</a>
		<a href="/about/">Two</a>
		<a href="/about#team">Three</a>
	</body></html>`

	links := DiscoverLinks("https://example.com/", []byte(html), "example.com")
	if len(links) != 1 {
		t.Errorf("trailing-slash and fragment variants must collapse, got %v", links)
	}
}

func TestDiscoverLinksAllowsSubdomains(t *testing.T) {
	html := `<html><body>
		<a href="https://blog.example.com/post">Blog</a>
		<a href="https://example.com.evil.net/x">Evil</a>
	</body></html>`

	links := DiscoverLinks("https://example.com/", []byte(html), "example.com")
	expected := []string{"https://blog.example.com/post"}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("expected %v, got %v", expected, links)
	}
}

func TestIsSameDomain(t *testing.T) {
	tests := []struct {
		url      string
		domain   string
		expected bool
	}{
		{"https://example.com/x", "example.com", true},
		{"https://www.example.com/x", "example.com", true},
		{"https://blog.example.com/x", "example.com", true},
		{"https://example.com.evil.net/x", "example.com", false},
		{"https://notexample.com/x", "example.com", false},
		{"https://EXAMPLE.com/x", "example.com", true},
	}

	for _, tt := range tests {
		if got := IsSameDomain(tt.url, tt.domain); got != tt.expected {
			t.Errorf("IsSameDomain(%q, %q) = %v, want %v", tt.url, tt.domain, got, tt.expected)
		}
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		host     string
		expected string
	}{
		{"www.example.com", "example.com"},
		{"Example.COM", "example.com"},
		{"sub.example.com", "sub.example.com"},
	}

	for _, tt := range tests {
		if got := NormalizeDomain(tt.host); got != tt.expected {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.host, got, tt.expected)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://example.com/about/", "https://example.com/about"},
		{"https://example.com/about", "https://example.com/about"},
		{"https://example.com/about#team", "https://example.com/about"},
		{"https://example.com/", "https://example.com"},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.url); got != tt.expected {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.url, got, tt.expected)
		}
	}
}

func TestIsAssetPath(t *testing.T) {
	assets := []string{"/img/logo.png", "/file.PDF", "/style.css", "/archive.tar"}
	for _, p := range assets {
		if !isAssetPath(p) {
			t.Errorf("expected %q to be an asset path", p)
		}
	}
	pages := []string{"/about", "/index.html", "/products.php", "/"}
	for _, p := range pages {
		if isAssetPath(p) {
			t.Errorf("expected %q not to be an asset path", p)
		}
	}
}
