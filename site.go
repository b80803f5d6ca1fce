package sitechat

import (
	"context"
	"time"
)

// Site represents a website registered for crawling and chat.
// A site is identified externally by its canonical base URL.
type Site struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`

	// VectorIndexID names the on-disk vector store holding this site's
	// embedded content. Empty means the site has not been indexed, or its
	// index was invalidated by the consistency auditor.
	VectorIndexID string `json:"vectorIndexId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "site URL required")
	}
	return nil
}

// SiteService represents a service for managing registered sites.
type SiteService interface {
	// CreateSite creates a new site.
	// Returns ECONFLICT if a site with the same URL already exists.
	CreateSite(ctx context.Context, site *Site) error

	// FindSiteByID retrieves a site by ID.
	// Returns ENOTFOUND if the site does not exist.
	FindSiteByID(ctx context.Context, id string) (*Site, error)

	// FindSiteByURL retrieves a site by its canonical base URL.
	// Returns ENOTFOUND if the site does not exist.
	FindSiteByURL(ctx context.Context, url string) (*Site, error)

	// FindSites retrieves sites matching the filter.
	FindSites(ctx context.Context, filter SiteFilter) ([]*Site, error)

	// UpdateSite updates an existing site.
	// Returns ENOTFOUND if the site does not exist.
	UpdateSite(ctx context.Context, id string, upd SiteUpdate) (*Site, error)

	// SetVectorIndexID binds (or, with an empty id, clears) the vector
	// index registered for the site.
	SetVectorIndexID(ctx context.Context, siteID, indexID string) error

	// DeleteSite permanently removes a site record.
	// Returns ENOTFOUND if the site does not exist.
	DeleteSite(ctx context.Context, id string) error
}

// SiteFilter represents a filter for FindSites.
type SiteFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	// Indexed filters on whether a vector index is registered.
	Indexed *bool `json:"indexed"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SiteUpdate represents fields that can be updated on a site.
type SiteUpdate struct {
	Title *string `json:"title"`
}

// DeleteReport describes which steps of a site deletion completed.
// Deletion is a multi-step operation; when a later step fails the report
// still tells the caller what was already altered.
type DeleteReport struct {
	StoreRemoved  bool `json:"storeRemoved"`
	ExportRemoved bool `json:"exportRemoved"`
	PagesDeleted  int  `json:"pagesDeleted"`
	SiteDeleted   bool `json:"siteDeleted"`
}
