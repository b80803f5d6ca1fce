// Package vectorize turns crawled page records into a queryable vector
// index and keeps the site registry consistent with what is on disk.
package vectorize

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jmilosz/sitechat"
)

// MinContentLength is the shortest combined text worth indexing.
// Records below it carry no answerable content.
const MinContentLength = 10

// Pipeline embeds crawled records into a site's vector index and
// registers the index on the site record once it is verified on disk.
//
// Concurrent Index calls for the same site are not serialized: both may
// embed, but they target the same URL-derived index ID and the store
// write is atomic, so the registry never points at a half-written index.
type Pipeline struct {
	Sites  sitechat.SiteService
	Store  sitechat.VectorStore
	Logger *slog.Logger
}

// NewPipeline creates a pipeline.
func NewPipeline(sites sitechat.SiteService, store sitechat.VectorStore, logger *slog.Logger) *Pipeline {
	return &Pipeline{Sites: sites, Store: store, Logger: logger}
}

// IndexID derives the stable vector index identifier for a site URL.
// The same URL always maps to the same index.
func IndexID(siteURL string) string {
	return sitechat.Fingerprint(siteURL)
}

// Index embeds records into the site's vector index and binds the index
// ID to the site. If the site already has a valid index under the derived
// ID, indexing is skipped and the existing ID returned.
// Returns EEMPTY when no record has enough content to index.
func (p *Pipeline) Index(ctx context.Context, site *sitechat.Site, records []*sitechat.PageRecord) (string, error) {
	if site == nil || site.ID == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "site required")
	}

	indexID := IndexID(site.URL)
	if site.VectorIndexID == indexID && p.Store.Valid(indexID) {
		p.log().Info("index up to date", "site", site.URL, "index", indexID)
		return indexID, nil
	}

	docs := make([]sitechat.Document, 0, len(records))
	for _, r := range records {
		content := strings.TrimSpace(r.CombinedText)
		if len(content) < MinContentLength {
			continue
		}
		docs = append(docs, sitechat.Document{
			ID:      strconv.Itoa(len(docs)),
			Content: content,
			Meta: sitechat.DocumentMeta{
				URL:             r.URL,
				Title:           r.Title,
				MetaDescription: r.MetaDescription,
				WordCount:       r.WordCount,
				Fingerprint:     r.Fingerprint,
			},
		})
	}
	if len(docs) == 0 {
		return "", sitechat.Errorf(sitechat.EEMPTY, "no indexable content for %s", site.URL)
	}

	if err := p.Store.Upsert(ctx, indexID, docs); err != nil {
		return "", err
	}
	if !p.Store.Valid(indexID) {
		return "", sitechat.Errorf(sitechat.EINTERNAL, "index %s was not created successfully", indexID)
	}

	if err := p.Sites.SetVectorIndexID(ctx, site.ID, indexID); err != nil {
		return "", err
	}
	site.VectorIndexID = indexID

	p.log().Info("indexed site", "site", site.URL, "index", indexID, "documents", len(docs))
	return indexID, nil
}

func (p *Pipeline) log() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}
