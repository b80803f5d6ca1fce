package mock

import (
	"context"

	"github.com/jmilosz/sitechat"
)

var _ sitechat.PageService = (*PageService)(nil)

// PageService is a mock implementation of sitechat.PageService.
type PageService struct {
	CreatePagesFn       func(ctx context.Context, pages []*sitechat.PageRecord) error
	FindPagesBySiteFn   func(ctx context.Context, siteID string) ([]*sitechat.PageRecord, error)
	DeletePagesBySiteFn func(ctx context.Context, siteID string) (int, error)
}

func (s *PageService) CreatePages(ctx context.Context, pages []*sitechat.PageRecord) error {
	return s.CreatePagesFn(ctx, pages)
}

func (s *PageService) FindPagesBySite(ctx context.Context, siteID string) ([]*sitechat.PageRecord, error) {
	return s.FindPagesBySiteFn(ctx, siteID)
}

func (s *PageService) DeletePagesBySite(ctx context.Context, siteID string) (int, error) {
	return s.DeletePagesBySiteFn(ctx, siteID)
}
