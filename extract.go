package sitechat

// PageContent holds the structured fields extracted from one HTML page,
// already normalized, plus the outbound links eligible for crawling.
type PageContent struct {
	Title           string
	MetaDescription string
	Headings        string // h1-h6 in document order, " | "-joined
	Paragraphs      string
	ListItems       string // " | "-joined
	CombinedText    string
	WordCount       int

	// Links are absolute URLs resolved against the page URL, restricted to
	// the crawl's base host and its subdomains. Pure fragment links and
	// non-HTTP schemes are excluded.
	Links []string
}

// Extractor converts a page's HTML into structured, normalized fields.
type Extractor interface {
	// Extract parses html and returns the extracted fields. pageURL is
	// used to resolve relative links; baseHost bounds link scope.
	Extract(html, pageURL, baseHost string) (*PageContent, error)
}
