package mock

import (
	"context"

	"github.com/jmilosz/sitechat"
)

var _ sitechat.SiteService = (*SiteService)(nil)

// SiteService is a mock implementation of sitechat.SiteService.
type SiteService struct {
	CreateSiteFn       func(ctx context.Context, site *sitechat.Site) error
	FindSiteByIDFn     func(ctx context.Context, id string) (*sitechat.Site, error)
	FindSiteByURLFn    func(ctx context.Context, url string) (*sitechat.Site, error)
	FindSitesFn        func(ctx context.Context, filter sitechat.SiteFilter) ([]*sitechat.Site, error)
	UpdateSiteFn       func(ctx context.Context, id string, upd sitechat.SiteUpdate) (*sitechat.Site, error)
	SetVectorIndexIDFn func(ctx context.Context, siteID, indexID string) error
	DeleteSiteFn       func(ctx context.Context, id string) error
}

func (s *SiteService) CreateSite(ctx context.Context, site *sitechat.Site) error {
	return s.CreateSiteFn(ctx, site)
}

func (s *SiteService) FindSiteByID(ctx context.Context, id string) (*sitechat.Site, error) {
	return s.FindSiteByIDFn(ctx, id)
}

func (s *SiteService) FindSiteByURL(ctx context.Context, url string) (*sitechat.Site, error) {
	return s.FindSiteByURLFn(ctx, url)
}

func (s *SiteService) FindSites(ctx context.Context, filter sitechat.SiteFilter) ([]*sitechat.Site, error) {
	return s.FindSitesFn(ctx, filter)
}

func (s *SiteService) UpdateSite(ctx context.Context, id string, upd sitechat.SiteUpdate) (*sitechat.Site, error) {
	return s.UpdateSiteFn(ctx, id, upd)
}

func (s *SiteService) SetVectorIndexID(ctx context.Context, siteID, indexID string) error {
	return s.SetVectorIndexIDFn(ctx, siteID, indexID)
}

func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	return s.DeleteSiteFn(ctx, id)
}
