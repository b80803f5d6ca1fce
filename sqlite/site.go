package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmilosz/sitechat"
)

// Compile-time interface verification.
var _ sitechat.SiteService = (*SiteService)(nil)

// SiteService implements sitechat.SiteService using SQLite.
type SiteService struct {
	db *DB
}

// NewSiteService creates a new SiteService.
func NewSiteService(db *DB) *SiteService {
	return &SiteService{db: db}
}

// CreateSite creates a new site.
func (s *SiteService) CreateSite(ctx context.Context, site *sitechat.Site) error {
	if err := site.Validate(); err != nil {
		return err
	}

	if existing, err := s.FindSiteByURL(ctx, site.URL); err == nil && existing != nil {
		return sitechat.Errorf(sitechat.ECONFLICT, "site %q already exists", site.URL)
	}

	site.ID = uuid.New().String()
	now := time.Now().UTC()
	site.CreatedAt = now
	site.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sites (id, url, title, vector_index_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, site.ID, site.URL, site.Title, site.VectorIndexID,
		site.CreatedAt.Format(time.RFC3339), site.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindSiteByID retrieves a site by ID.
func (s *SiteService) FindSiteByID(ctx context.Context, id string) (*sitechat.Site, error) {
	return s.findOne(ctx, "id = ?", id)
}

// FindSiteByURL retrieves a site by its canonical base URL.
func (s *SiteService) FindSiteByURL(ctx context.Context, url string) (*sitechat.Site, error) {
	return s.findOne(ctx, "url = ?", url)
}

func (s *SiteService) findOne(ctx context.Context, where string, arg any) (*sitechat.Site, error) {
	var site sitechat.Site
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, vector_index_id, created_at, updated_at
		FROM sites
		WHERE `+where, arg).Scan(&site.ID, &site.URL, &site.Title, &site.VectorIndexID,
		&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "site not found")
	}
	if err != nil {
		return nil, err
	}

	if site.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if site.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &site, nil
}

// FindSites retrieves sites matching the filter.
func (s *SiteService) FindSites(ctx context.Context, filter sitechat.SiteFilter) ([]*sitechat.Site, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, vector_index_id, created_at, updated_at FROM sites WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Indexed != nil {
		if *filter.Indexed {
			query.WriteString(" AND vector_index_id != ''")
		} else {
			query.WriteString(" AND vector_index_id = ''")
		}
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*sitechat.Site
	for rows.Next() {
		var site sitechat.Site
		var createdAt, updatedAt string

		if err := rows.Scan(&site.ID, &site.URL, &site.Title, &site.VectorIndexID,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if site.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if site.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		sites = append(sites, &site)
	}

	return sites, rows.Err()
}

// UpdateSite updates an existing site.
func (s *SiteService) UpdateSite(ctx context.Context, id string, upd sitechat.SiteUpdate) (*sitechat.Site, error) {
	site, err := s.FindSiteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		site.Title = *upd.Title
	}

	if err := site.Validate(); err != nil {
		return nil, err
	}

	site.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sites
		SET title = ?, updated_at = ?
		WHERE id = ?
	`, site.Title, site.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return site, nil
}

// SetVectorIndexID binds or clears the vector index registered for a site.
func (s *SiteService) SetVectorIndexID(ctx context.Context, siteID, indexID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sites
		SET vector_index_id = ?, updated_at = ?
		WHERE id = ?
	`, indexID, time.Now().UTC().Format(time.RFC3339), siteID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sitechat.Errorf(sitechat.ENOTFOUND, "site not found")
	}
	return nil
}

// DeleteSite permanently removes a site record. Page rows cascade.
func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sitechat.Errorf(sitechat.ENOTFOUND, "site not found")
	}
	return nil
}
