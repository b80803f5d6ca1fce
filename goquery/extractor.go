// Package goquery provides HTML content extraction using goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmilosz/sitechat"
)

// boilerplateSelector matches subtrees excluded before paragraph and list
// item extraction.
const boilerplateSelector = "script, style, nav, footer, header, aside"

// Compile-time interface verification.
var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor extracts structured, normalized fields from HTML pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns the page's structured fields and its
// in-scope outbound links.
func (e *Extractor) Extract(html, pageURL, baseHost string) (*sitechat.PageContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "failed to parse HTML: %v", err)
	}

	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid page URL %q", pageURL)
	}

	content := &sitechat.PageContent{
		Title: sitechat.Normalize(doc.Find("title").First().Text()),
		Links: extractLinks(doc, page, baseHost),
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		content.MetaDescription = sitechat.Normalize(desc)
	}

	var headings []string
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		if h := sitechat.Normalize(sel.Text()); h != "" {
			headings = append(headings, h)
		}
	})
	content.Headings = strings.Join(headings, " | ")

	// Boilerplate subtrees are removed only now: links and headings above
	// consider the whole document, paragraph and list text does not.
	doc.Find(boilerplateSelector).Remove()

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if p := sitechat.Normalize(sel.Text()); p != "" {
			paragraphs = append(paragraphs, p)
		}
	})
	content.Paragraphs = strings.Join(paragraphs, " ")

	var items []string
	doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
		if li := sitechat.Normalize(sel.Text()); li != "" {
			items = append(items, li)
		}
	})
	content.ListItems = strings.Join(items, " | ")

	content.CombinedText = sitechat.Normalize(strings.Join([]string{
		content.Title,
		content.MetaDescription,
		content.Headings,
		content.Paragraphs,
		content.ListItems,
	}, " "))
	content.WordCount = sitechat.WordCount(content.CombinedText)

	return content, nil
}

// extractLinks collects anchor hrefs resolved against the page URL,
// restricted to the base host and its subdomains. Pure fragment links and
// non-HTTP schemes are dropped. Order of first occurrence is preserved.
func extractLinks(doc *goquery.Document, page *url.URL, baseHost string) []string {
	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := page.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if !inScope(resolved.Host, baseHost) {
			return
		}

		abs := resolved.String()
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	return links
}

// inScope reports whether host equals the crawl's base host or is a
// subdomain of it.
func inScope(host, baseHost string) bool {
	return host == baseHost || strings.HasSuffix(host, "."+baseHost)
}

func isNonHTTPLink(href string) bool {
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}
