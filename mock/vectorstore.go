package mock

import (
	"context"

	"github.com/jmilosz/sitechat"
)

var _ sitechat.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of sitechat.VectorStore.
type VectorStore struct {
	UpsertFn func(ctx context.Context, indexID string, docs []sitechat.Document) error
	QueryFn  func(ctx context.Context, indexID string, query string, k int) ([]sitechat.ScoredDocument, error)
	ValidFn  func(indexID string) bool
	RemoveFn func(indexID string) (bool, error)
}

func (s *VectorStore) Upsert(ctx context.Context, indexID string, docs []sitechat.Document) error {
	return s.UpsertFn(ctx, indexID, docs)
}

func (s *VectorStore) Query(ctx context.Context, indexID string, query string, k int) ([]sitechat.ScoredDocument, error) {
	return s.QueryFn(ctx, indexID, query, k)
}

func (s *VectorStore) Valid(indexID string) bool {
	return s.ValidFn(indexID)
}

func (s *VectorStore) Remove(indexID string) (bool, error) {
	return s.RemoveFn(indexID)
}

var _ sitechat.ExportStore = (*ExportStore)(nil)

// ExportStore is a mock implementation of sitechat.ExportStore.
type ExportStore struct {
	ExportFn func(records []*sitechat.PageRecord, indexID string) (string, error)
	RemoveFn func(indexID string) (bool, error)
}

func (s *ExportStore) Export(records []*sitechat.PageRecord, indexID string) (string, error) {
	return s.ExportFn(records, indexID)
}

func (s *ExportStore) Remove(indexID string) (bool, error) {
	return s.RemoveFn(indexID)
}
