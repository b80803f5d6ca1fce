// Package fs provides filesystem-backed storage: the per-site on-disk
// vector store and the flat-file export of crawled records.
package fs

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmilosz/sitechat"
	"golang.org/x/sync/errgroup"
)

const (
	// vectorsFile is the persisted index file inside each index directory.
	// Its presence and non-trivial size is what makes an index valid.
	vectorsFile = "vectors.json"

	// minVectorsFileSize is the smallest size a vectors file holding at
	// least one document can have. Anything at or below it is treated as
	// an incomplete write.
	minVectorsFileSize = 2

	defaultEmbedConcurrency = 4
)

// Compile-time interface verification.
var _ sitechat.VectorStore = (*Store)(nil)

// Store is an on-disk vector store. Each index lives in its own directory
// under the root and persists embedded documents in a single JSON file,
// written atomically via a temp file and rename. Queries are brute-force
// cosine similarity, which is ample for the page counts a crawl produces.
type Store struct {
	root        string
	embedder    sitechat.Embedder
	concurrency int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithEmbedConcurrency bounds how many embedding calls run at once
// during Upsert.
func WithEmbedConcurrency(n int) StoreOption {
	return func(s *Store) {
		s.concurrency = n
	}
}

// NewStore creates a store rooted at root. Index directories are created
// on demand.
func NewStore(root string, embedder sitechat.Embedder, opts ...StoreOption) *Store {
	s := &Store{
		root:        root,
		embedder:    embedder,
		concurrency: defaultEmbedConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// storedDoc is the persisted form of an embedded document.
type storedDoc struct {
	ID      string                `json:"id"`
	Content string                `json:"content"`
	Meta    sitechat.DocumentMeta `json:"meta"`
	Vector  []float32             `json:"vector"`
}

// Upsert embeds and stores documents under the index, replacing existing
// documents with the same IDs. The file write is atomic; a crash mid-upsert
// leaves either the previous complete file or a temp file the validity
// check ignores.
func (s *Store) Upsert(ctx context.Context, indexID string, docs []sitechat.Document) error {
	existing, err := s.load(indexID)
	if err != nil {
		return err
	}

	byID := make(map[string]int, len(existing))
	for i, doc := range existing {
		byID[doc.ID] = i
	}

	embedded := make([]storedDoc, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			vec, err := s.embedder.Embed(gctx, doc.Content)
			if err != nil {
				return err
			}
			embedded[i] = storedDoc{ID: doc.ID, Content: doc.Content, Meta: doc.Meta, Vector: vec}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, doc := range embedded {
		if i, ok := byID[doc.ID]; ok {
			existing[i] = doc
		} else {
			byID[doc.ID] = len(existing)
			existing = append(existing, doc)
		}
	}

	return s.write(indexID, existing)
}

// Query returns the k documents most similar to the query text.
func (s *Store) Query(ctx context.Context, indexID string, query string, k int) ([]sitechat.ScoredDocument, error) {
	if !s.Valid(indexID) {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "vector index %q not found", indexID)
	}

	docs, err := s.load(indexID)
	if err != nil {
		return nil, err
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	scored := make([]sitechat.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		scored = append(scored, sitechat.ScoredDocument{
			Document: sitechat.Document{ID: doc.ID, Content: doc.Content, Meta: doc.Meta},
			Score:    cosine(queryVec, doc.Vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Valid reports whether the index directory exists and contains a
// non-trivial persisted index file.
func (s *Store) Valid(indexID string) bool {
	if indexID == "" {
		return false
	}
	if info, err := os.Stat(s.dir(indexID)); err != nil || !info.IsDir() {
		return false
	}
	info, err := os.Stat(s.path(indexID))
	return err == nil && info.Size() > minVectorsFileSize
}

// Remove deletes the index's backing directory, whether or not it holds a
// complete index. A directory left behind by an interrupted write is still
// removed. Reports whether a directory was actually removed.
func (s *Store) Remove(indexID string) (bool, error) {
	if indexID == "" {
		return false, nil
	}
	dir := s.dir(indexID)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) dir(indexID string) string {
	return filepath.Join(s.root, indexID)
}

func (s *Store) path(indexID string) string {
	return filepath.Join(s.dir(indexID), vectorsFile)
}

// load reads the persisted documents for an index. A missing or invalid
// index loads as empty.
func (s *Store) load(indexID string) ([]storedDoc, error) {
	if !s.Valid(indexID) {
		return nil, nil
	}

	data, err := os.ReadFile(s.path(indexID))
	if err != nil {
		return nil, err
	}

	var docs []storedDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "vector index %q is corrupted", indexID)
	}
	return docs, nil
}

// write persists documents atomically: temp file first, then rename.
func (s *Store) write(indexID string, docs []storedDoc) error {
	if err := os.MkdirAll(s.dir(indexID), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	tmp := s.path(indexID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(indexID))
}

// cosine returns the cosine similarity of two vectors, 0 for mismatched
// lengths or zero vectors.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
