package signals

// Aggregate merges per-page signal records into one site-level summary.
// Pure function, no I/O. Booleans are the logical OR across pages (the
// claim is "the site exposes X somewhere", not "every page does"), sets
// are unions capped after the union so distinct entities from different
// pages survive up to the cap, and the word count is a floor average.
func Aggregate(targetDomain string, pages []PageSignals) SiteSignals {
	site := SiteSignals{
		TargetDomain: targetDomain,
		PagesCrawled: len(pages),
	}

	var (
		totalWords int
		types      = newOrderedSet()
		emails     = newOrderedSet()
		phones     = newOrderedSet()
		addresses  = newOrderedSet()
		geos       = newOrderedSet()
		socials    = newOrderedSet()
	)

	for _, p := range pages {
		// Longest title/description wins so the scorer judges the site by
		// its best page; ties keep crawl order for determinism.
		if len(p.Title) > len(site.Title) {
			site.Title = p.Title
		}
		if len(p.MetaDescription) > len(site.MetaDescription) {
			site.MetaDescription = p.MetaDescription
		}

		site.HasH1 = site.HasH1 || len(p.H1) > 0
		site.HasH2 = site.HasH2 || len(p.H2) > 0
		site.HasJSONLD = site.HasJSONLD || p.HasJSONLD
		site.HasMicrodata = site.HasMicrodata || p.HasMicrodata
		site.HasOpenGraph = site.HasOpenGraph || p.HasOpenGraph
		site.HasTwitterCard = site.HasTwitterCard || p.HasTwitterCard
		site.HasContactPage = site.HasContactPage || IsContactLikePath(p.URL)

		types.addAll(p.JSONLDTypes)
		emails.addAll(p.FoundEmails)
		phones.addAll(p.FoundPhones)
		addresses.addAll(p.AddressLikeSentences)
		geos.addAll(p.GeoLikeSentences)
		socials.addAll(p.SocialLinks)

		totalWords += p.WordCount
	}

	site.JSONLDTypes = types.values
	site.FoundEmails = capStrings(emails.values, MaxSiteEmails)
	site.FoundPhones = capStrings(phones.values, MaxSitePhones)
	site.AddressLikeSentences = capStrings(addresses.values, MaxSiteSentences)
	site.GeoLikeSentences = capStrings(geos.values, MaxSiteSentences)
	site.SocialLinks = capStrings(socials.values, MaxSiteSocialLinks)

	if len(pages) > 0 {
		site.AverageWordCount = totalWords / len(pages)
	}

	return site
}

// orderedSet deduplicates while preserving first-seen order, which keeps
// aggregation deterministic for a fixed page order.
type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) addAll(items []string) {
	for _, item := range items {
		if _, ok := s.seen[item]; ok {
			continue
		}
		s.seen[item] = struct{}{}
		s.values = append(s.values, item)
	}
}
