package mock

import "github.com/jmilosz/sitechat"

var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitechat.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL, baseHost string) (*sitechat.PageContent, error)
}

func (e *Extractor) Extract(html, pageURL, baseHost string) (*sitechat.PageContent, error) {
	return e.ExtractFn(html, pageURL, baseHost)
}
