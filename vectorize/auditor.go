package vectorize

import (
	"context"
	"log/slog"

	"github.com/jmilosz/sitechat"
)

// Auditor reconciles the site registry against the on-disk vector store.
// A site can reference an index that no longer exists or was never
// completely written; the auditor clears such references so the site
// reads as not indexed instead of failing at query time. It never
// touches store data, only registry rows.
type Auditor struct {
	Sites  sitechat.SiteService
	Store  sitechat.VectorStore
	Logger *slog.Logger
}

// NewAuditor creates an auditor.
func NewAuditor(sites sitechat.SiteService, store sitechat.VectorStore, logger *slog.Logger) *Auditor {
	return &Auditor{Sites: sites, Store: store, Logger: logger}
}

// Reconcile clears the vector index reference of every site whose
// registered index is missing or invalid on disk. Returns how many
// references were cleared.
func (a *Auditor) Reconcile(ctx context.Context) (int, error) {
	indexed := true
	sites, err := a.Sites.FindSites(ctx, sitechat.SiteFilter{Indexed: &indexed})
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, site := range sites {
		if a.Store.Valid(site.VectorIndexID) {
			continue
		}
		if err := a.Sites.SetVectorIndexID(ctx, site.ID, ""); err != nil {
			return fixed, err
		}
		a.log().Warn("cleared stale index reference", "site", site.URL, "index", site.VectorIndexID)
		fixed++
	}
	return fixed, nil
}

func (a *Auditor) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}
