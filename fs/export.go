package fs

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jmilosz/sitechat"
)

// Compile-time interface verification.
var _ sitechat.ExportStore = (*Exporter)(nil)

// Exporter writes crawled page records to per-index CSV files so the
// crawl output can be inspected outside the vector store.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// exportHeader is the CSV column order, matching the page record fields.
var exportHeader = []string{
	"url",
	"title",
	"meta_description",
	"headings",
	"paragraphs",
	"list_items",
	"combined_text",
	"word_count",
	"fingerprint",
}

// Export writes records to <indexID>_pages.csv in the exporter's
// directory, replacing any previous export for the index. The write is
// atomic. Returns the path of the written file.
func (e *Exporter) Export(records []*sitechat.PageRecord, indexID string) (string, error) {
	if indexID == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "Index ID required.")
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", err
	}

	path := e.Path(indexID)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		f.Close()
		return "", err
	}
	for _, r := range records {
		row := []string{
			r.URL,
			r.Title,
			r.MetaDescription,
			r.Headings,
			r.Paragraphs,
			r.ListItems,
			r.CombinedText,
			strconv.Itoa(r.WordCount),
			r.Fingerprint,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes the export file for an index. It reports whether a file
// was actually removed; a missing file is not an error.
func (e *Exporter) Remove(indexID string) (bool, error) {
	if indexID == "" {
		return false, nil
	}
	path := e.Path(indexID)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := os.Remove(path); err != nil {
		return false, err
	}
	return true, nil
}

// Path returns the export file path for an index.
func (e *Exporter) Path(indexID string) string {
	return filepath.Join(e.dir, indexID+"_pages.csv")
}
