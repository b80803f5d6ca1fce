package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmilosz/sitechat"
)

// Compile-time interface verification.
var _ sitechat.PageService = (*PageService)(nil)

// PageService implements sitechat.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// CreatePages stores a batch of page records.
func (s *PageService) CreatePages(ctx context.Context, pages []*sitechat.PageRecord) error {
	now := time.Now().UTC()

	for _, page := range pages {
		if err := page.Validate(); err != nil {
			return err
		}

		page.ID = uuid.New().String()
		page.CreatedAt = now

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO pages (id, site_id, url, title, meta_description, headings,
				paragraphs, list_items, combined_text, word_count, fingerprint, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, page.ID, page.SiteID, page.URL, page.Title, page.MetaDescription, page.Headings,
			page.Paragraphs, page.ListItems, page.CombinedText, page.WordCount,
			page.Fingerprint, page.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return nil
}

// FindPagesBySite retrieves all records for a site in creation order.
func (s *PageService) FindPagesBySite(ctx context.Context, siteID string) ([]*sitechat.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, site_id, url, title, meta_description, headings,
			paragraphs, list_items, combined_text, word_count, fingerprint, created_at
		FROM pages
		WHERE site_id = ?
		ORDER BY rowid
	`, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sitechat.PageRecord
	for rows.Next() {
		var page sitechat.PageRecord
		var createdAt string

		if err := rows.Scan(&page.ID, &page.SiteID, &page.URL, &page.Title,
			&page.MetaDescription, &page.Headings, &page.Paragraphs, &page.ListItems,
			&page.CombinedText, &page.WordCount, &page.Fingerprint, &createdAt); err != nil {
			return nil, err
		}

		if page.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}

// DeletePagesBySite removes all records for a site.
func (s *PageService) DeletePagesBySite(ctx context.Context, siteID string) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE site_id = ?", siteID)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
