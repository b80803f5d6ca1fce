package sitechat

import (
	"net/url"
	"strings"
)

// PlaceholderRecords synthesizes a minimal record set for a site that
// yielded no crawlable pages, so downstream indexing still has content to
// operate on. Callers must tell the user that placeholder content was used.
func PlaceholderRecords(baseURL string) []*PageRecord {
	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}

	title := Normalize(host)
	meta := Normalize("Placeholder content for " + host)
	paragraphs := Normalize(
		"No pages could be crawled from " + host + ". " +
			"The site may disallow crawling through robots.txt or may be unreachable. " +
			"This placeholder stands in for the site content so that indexing and chat remain available.")

	combined := Normalize(strings.Join([]string{title, meta, paragraphs}, " "))

	return []*PageRecord{{
		URL:             baseURL,
		Title:           title,
		MetaDescription: meta,
		Paragraphs:      paragraphs,
		CombinedText:    combined,
		WordCount:       WordCount(combined),
		Fingerprint:     Fingerprint(baseURL),
	}}
}
