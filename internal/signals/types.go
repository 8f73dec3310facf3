// Package signals extracts AI-discoverability signals from HTML documents.
// It turns one fetched page into a fixed PageSignals record and merges many
// records into a site-level SiteSignals summary for scoring.
package signals

// Caps applied during extraction and aggregation. They bound payload size:
// extracted text is later handed to a language model as grounding context,
// so every list and string has a hard ceiling.
const (
	MaxHeadingsPerLevel   = 5
	MaxEmailsPerPage      = 10
	MaxPhonesPerPage      = 10
	MaxSentenceMatches    = 5
	MaxSocialLinksPerPage = 12
	MaxExtractedTextLen   = 5000

	// Site-level caps applied after union across pages.
	MaxSiteEmails      = 10
	MaxSitePhones      = 10
	MaxSiteSocialLinks = 12
	MaxSiteSentences   = 8
)

// PageSignals is the atomic unit of the pipeline: everything the extractor
// learned about a single crawled page. Instances are never mutated after
// construction.
type PageSignals struct {
	URL        string `json:"url"`
	FetchOK    bool   `json:"fetchOk"`
	HTTPStatus int    `json:"httpStatus"`

	Title           string `json:"title,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`

	H1 []string `json:"h1,omitempty"`
	H2 []string `json:"h2,omitempty"`
	H3 []string `json:"h3,omitempty"`

	HasJSONLD      bool     `json:"hasJsonLd"`
	JSONLDTypes    []string `json:"jsonLdTypes,omitempty"`
	HasMicrodata   bool     `json:"hasMicrodata"`
	HasOpenGraph   bool     `json:"hasOpenGraph"`
	HasTwitterCard bool     `json:"hasTwitterCard"`

	CanonicalURL string   `json:"canonicalUrl,omitempty"`
	Hreflangs    []string `json:"hreflangs,omitempty"`

	ExtractedText     string `json:"extractedText,omitempty"`
	RawBodyTextLength int    `json:"rawBodyTextLength"`
	WordCount         int    `json:"wordCount"`

	FoundEmails          []string `json:"foundEmails,omitempty"`
	FoundPhones          []string `json:"foundPhones,omitempty"`
	AddressLikeSentences []string `json:"addressLikeSentences,omitempty"`
	GeoLikeSentences     []string `json:"geoLikeSentences,omitempty"`
	SocialLinks          []string `json:"socialLinks,omitempty"`
}

// SiteSignals is the aggregate over all crawled pages of one audit.
// Booleans are the OR across pages, sets are capped unions, and the word
// count is a floor average. TargetDomain is the authority for every
// on-domain membership test in the pipeline.
type SiteSignals struct {
	TargetDomain string `json:"targetDomain"`
	PagesCrawled int    `json:"pagesCrawled"`

	Title           string `json:"title,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`

	HasH1 bool `json:"hasH1"`
	HasH2 bool `json:"hasH2"`

	HasJSONLD      bool     `json:"hasJsonLd"`
	JSONLDTypes    []string `json:"jsonLdTypes,omitempty"`
	HasMicrodata   bool     `json:"hasMicrodata"`
	HasOpenGraph   bool     `json:"hasOpenGraph"`
	HasTwitterCard bool     `json:"hasTwitterCard"`

	HasContactPage bool `json:"hasContactPage"`

	FoundEmails          []string `json:"foundEmails,omitempty"`
	FoundPhones          []string `json:"foundPhones,omitempty"`
	AddressLikeSentences []string `json:"addressLikeSentences,omitempty"`
	GeoLikeSentences     []string `json:"geoLikeSentences,omitempty"`
	SocialLinks          []string `json:"socialLinks,omitempty"`

	AverageWordCount int `json:"averageWordCount"`
}
