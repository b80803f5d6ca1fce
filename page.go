package sitechat

import (
	"context"
	"time"
)

// PageRecord holds the extracted, normalized content of one crawled page.
// Records are immutable once created and are deleted with their site.
type PageRecord struct {
	ID     string `json:"id"`
	SiteID string `json:"siteId"`
	URL    string `json:"url"`

	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	Headings        string `json:"headings"`  // document order, "|"-joined
	Paragraphs      string `json:"paragraphs"`
	ListItems       string `json:"listItems"` // document order, "|"-joined
	CombinedText    string `json:"combinedText"`
	WordCount       int    `json:"wordCount"`

	// Fingerprint is a stable hash of the page URL, used as both the
	// deduplication key and the vector document identifier.
	Fingerprint string `json:"fingerprint"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (p *PageRecord) Validate() error {
	if p.SiteID == "" {
		return Errorf(EINVALID, "page record site ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page record URL required")
	}
	return nil
}

// PageService represents a service for persisting crawled page records.
type PageService interface {
	// CreatePages stores a batch of page records.
	CreatePages(ctx context.Context, pages []*PageRecord) error

	// FindPagesBySite retrieves all records for a site in creation order.
	FindPagesBySite(ctx context.Context, siteID string) ([]*PageRecord, error)

	// DeletePagesBySite removes all records for a site.
	// Returns the number of records deleted; deleting an unknown or empty
	// site is not an error.
	DeletePagesBySite(ctx context.Context, siteID string) (int, error)
}
