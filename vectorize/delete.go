package vectorize

import (
	"context"
	"log/slog"

	"github.com/jmilosz/sitechat"
)

// Deleter removes every artifact belonging to a site: the vector index,
// the CSV export, the stored page records, and finally the site row.
// Steps run in that order so a partial failure leaves the registry entry
// in place, where the auditor and a retried deletion can still find it.
type Deleter struct {
	Sites   sitechat.SiteService
	Pages   sitechat.PageService
	Store   sitechat.VectorStore
	Exports sitechat.ExportStore
	Logger  *slog.Logger
}

// NewDeleter creates a deleter.
func NewDeleter(sites sitechat.SiteService, pages sitechat.PageService, store sitechat.VectorStore, exports sitechat.ExportStore, logger *slog.Logger) *Deleter {
	return &Deleter{Sites: sites, Pages: pages, Store: store, Exports: exports, Logger: logger}
}

// DeleteSite removes all artifacts for the site. It is idempotent:
// deleting an unknown site, or one whose artifacts are partially gone,
// succeeds and the report says what was actually removed. On failure the
// report still describes the steps that completed.
func (d *Deleter) DeleteSite(ctx context.Context, siteID string) (*sitechat.DeleteReport, error) {
	report := &sitechat.DeleteReport{}

	site, err := d.Sites.FindSiteByID(ctx, siteID)
	if err != nil {
		if sitechat.ErrorCode(err) == sitechat.ENOTFOUND {
			return report, nil
		}
		return report, err
	}

	// A site that never finished indexing has no registered index, but
	// its artifacts still live under the URL-derived ID.
	indexID := site.VectorIndexID
	if indexID == "" {
		indexID = IndexID(site.URL)
	}

	// Remove the store unconditionally: a directory left by an
	// interrupted index build is invalid but must still be cleaned up.
	storeRemoved, err := d.Store.Remove(indexID)
	if err != nil {
		return report, err
	}
	report.StoreRemoved = storeRemoved

	removed, err := d.Exports.Remove(indexID)
	if err != nil {
		return report, err
	}
	report.ExportRemoved = removed

	n, err := d.Pages.DeletePagesBySite(ctx, site.ID)
	if err != nil {
		return report, err
	}
	report.PagesDeleted = n

	if err := d.Sites.DeleteSite(ctx, site.ID); err != nil {
		if sitechat.ErrorCode(err) != sitechat.ENOTFOUND {
			return report, err
		}
	} else {
		report.SiteDeleted = true
	}

	d.log().Info("deleted site", "site", site.URL,
		"storeRemoved", report.StoreRemoved,
		"exportRemoved", report.ExportRemoved,
		"pagesDeleted", report.PagesDeleted)
	return report, nil
}

func (d *Deleter) log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}
