package sitechat

import "context"

// DocumentMeta is the metadata stored alongside each embedded document.
type DocumentMeta struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	WordCount       int    `json:"word_count"`
	Fingerprint     string `json:"fingerprint"`
}

// Document is the unit of content stored in a vector index.
type Document struct {
	ID      string       `json:"id"`
	Content string       `json:"content"`
	Meta    DocumentMeta `json:"meta"`
}

// ScoredDocument is a document returned from a similarity query.
type ScoredDocument struct {
	Document
	Score float64 `json:"score"`
}

// VectorStore manages per-index on-disk vector stores.
//
// An index is valid only when its backing directory exists and contains a
// non-trivial persisted index file. Implementations must never serve a
// query from an invalid index.
type VectorStore interface {
	// Upsert embeds and stores documents under the index, replacing any
	// existing documents with the same IDs.
	Upsert(ctx context.Context, indexID string, docs []Document) error

	// Query returns the k documents most similar to the query text.
	// Returns ENOTFOUND if the index is missing or invalid.
	Query(ctx context.Context, indexID string, query string, k int) ([]ScoredDocument, error)

	// Valid reports whether the index's backing store exists and is
	// complete.
	Valid(indexID string) bool

	// Remove deletes the index's backing store, complete or not.
	// Reports whether a store was actually removed; removing an absent
	// index is not an error.
	Remove(indexID string) (bool, error)
}

// ExportStore persists flat-file exports of crawled page records.
type ExportStore interface {
	// Export writes the records for an index and returns the file path.
	Export(records []*PageRecord, indexID string) (string, error)

	// Remove deletes the export for an index if present.
	// Reports whether a file was actually removed.
	Remove(indexID string) (bool, error)
}
