package signals

import (
	"net/url"
	"regexp"
	"strings"
)

// The detectors below are intentionally best-effort and locale-mixed: the
// audited sites span several languages and countries. False negatives are
// acceptable, false positives are kept down by minimum-length requirements.
// Each detector is an isolated function so locale coverage can grow without
// touching the scorer.

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// Phone candidates: a leading + or digit followed by digits mixed with
	// common separators. Validated afterwards by digit count.
	phoneRe = regexp.MustCompile(`[+(]?[0-9][0-9()\-\s./]{6,}[0-9]`)

	nonDigitRe = regexp.MustCompile(`\D`)

	// Year spans like "2010-2024" carry exactly 8 digits and would pass
	// the digit-count check, so they are filtered out explicitly.
	yearRangeRe = regexp.MustCompile(`^\s*(19|20)\d{2}\s*[-–/.]\s*(19|20)\d{2}\s*$`)

	postalCodeRe = regexp.MustCompile(`\b\d{4,5}\b`)

	sentenceSplitRe = regexp.MustCompile(`[.!?\n]+`)
)

// streetTokens mark address-like sentences. Mixed English, German and
// Hungarian street vocabulary.
var streetTokens = []string{
	"street", "st.", "avenue", "ave.", "road", "rd.", "boulevard", "suite",
	"strasse", "straße", "platz", "gasse",
	"utca", "út", "tér", "körút", "krt.", "sétány",
}

// geoTokens mark sentences naming a country, city or region.
var geoTokens = []string{
	"hungary", "magyarország", "budapest", "debrecen", "szeged", "pécs",
	"győr", "austria", "vienna", "wien", "germany", "berlin", "münchen",
	"slovakia", "bratislava", "romania", "london", "europe", "európa",
	"located in", "based in", "headquarter",
}

// contactPathTokens mark contact/about-like URL paths.
var contactPathTokens = []string{
	"contact", "kontakt", "kapcsolat", "elerhetoseg", "elérhetőség",
	"about", "rolunk", "rólunk", "impressum", "imprint", "uber-uns",
}

// socialHosts is the fixed allow-list of social platforms. A link counts
// when its hostname equals an entry or is a subdomain of one.
var socialHosts = []string{
	"facebook.com", "instagram.com", "linkedin.com", "twitter.com", "x.com",
	"youtube.com", "tiktok.com", "pinterest.com", "threads.net",
}

// ExtractEmails returns deduplicated email addresses found in body text,
// capped at MaxEmailsPerPage.
func ExtractEmails(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range emailRe.FindAllString(text, -1) {
		key := strings.ToLower(m)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
		if len(out) >= MaxEmailsPerPage {
			break
		}
	}
	return out
}

// ExtractPhones returns deduplicated phone-like sequences from body text.
// A candidate must contain at least 8 digits after stripping separators;
// anything shorter is treated as a price, date or order number.
func ExtractPhones(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range phoneRe.FindAllString(text, -1) {
		if yearRangeRe.MatchString(m) {
			continue
		}
		digits := nonDigitRe.ReplaceAllString(m, "")
		if len(digits) < 8 || len(digits) > 15 {
			continue
		}
		if _, ok := seen[digits]; ok {
			continue
		}
		seen[digits] = struct{}{}
		out = append(out, NormalizeWhitespace(m))
		if len(out) >= MaxPhonesPerPage {
			break
		}
	}
	return out
}

// ExtractAddressSentences returns sentences that look like postal addresses:
// a street vocabulary token together with a house number or postal code.
func ExtractAddressSentences(text string) []string {
	return matchSentences(text, func(lower string) bool {
		if !containsAnyToken(lower, streetTokens) {
			return false
		}
		return postalCodeRe.MatchString(lower) || strings.ContainsAny(lower, "0123456789")
	})
}

// ExtractGeoSentences returns sentences naming a known country, city or
// region, or using a location phrase.
func ExtractGeoSentences(text string) []string {
	return matchSentences(text, func(lower string) bool {
		return containsAnyToken(lower, geoTokens)
	})
}

func matchSentences(text string, match func(lower string) bool) []string {
	var out []string
	for _, raw := range sentenceSplitRe.Split(text, -1) {
		sentence := NormalizeWhitespace(raw)
		if sentence == "" || len(sentence) > 300 {
			continue
		}
		if match(strings.ToLower(sentence)) {
			out = append(out, sentence)
			if len(out) >= MaxSentenceMatches {
				break
			}
		}
	}
	return out
}

func containsAnyToken(lower string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// IsSocialLink reports whether the absolute URL points at one of the
// allow-listed social platforms.
func IsSocialLink(absURL string) bool {
	u, err := url.Parse(absURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	for _, social := range socialHosts {
		if host == social || strings.HasSuffix(host, "."+social) {
			return true
		}
	}
	return false
}

// IsContactLikePath reports whether the URL path looks like a contact or
// about page in any supported language.
func IsContactLikePath(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	return containsAnyToken(path, contactPathTokens)
}
