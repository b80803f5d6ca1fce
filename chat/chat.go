// Package chat answers questions about a crawled site using retrieved
// page content and a language model.
package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmilosz/sitechat"
)

// DefaultTopK is how many documents are retrieved per question.
const DefaultTopK = 5

// thinkRE matches a model's chain-of-thought block, including across
// newlines, so it can be stripped from answers.
var thinkRE = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Service answers questions against a site's vector index.
type Service struct {
	Completer sitechat.Completer
	Store     sitechat.VectorStore
	TopK      int
}

// NewService creates a chat service retrieving DefaultTopK documents.
func NewService(completer sitechat.Completer, store sitechat.VectorStore) *Service {
	return &Service{Completer: completer, Store: store, TopK: DefaultTopK}
}

// Answer retrieves the most relevant content for query from the index and
// asks the completer for an answer grounded in it.
// Returns ENOTFOUND if the index is missing or invalid, EUNAVAILABLE if
// the completer cannot be reached.
func (s *Service) Answer(ctx context.Context, indexID, query string) (*sitechat.ChatResult, error) {
	if indexID == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "index ID required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "query required")
	}

	if err := s.Completer.Ping(ctx); err != nil {
		return nil, err
	}
	if !s.Store.Valid(indexID) {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "no valid index %q, crawl the site first", indexID)
	}

	k := s.TopK
	if k <= 0 {
		k = DefaultTopK
	}
	docs, err := s.Store.Query(ctx, indexID, query, k)
	if err != nil {
		return nil, err
	}

	contents := make([]string, 0, len(docs))
	for _, doc := range docs {
		contents = append(contents, doc.Content)
	}
	retrieved := strings.Join(contents, "\n\n")

	raw, err := s.Completer.Complete(ctx, BuildPrompt(retrieved, query))
	if err != nil {
		return nil, err
	}

	return &sitechat.ChatResult{
		Answer:           StripReasoning(raw),
		RetrievedContent: retrieved,
		SourceCount:      len(docs),
	}, nil
}

// BuildPrompt builds the completion prompt from retrieved content and the
// user's question.
func BuildPrompt(content, query string) string {
	return fmt.Sprintf(`You are a concise assistant. Answer the question using only the website content below. If the content does not contain the answer, say you don't know. Never include <think> tags in your reply and never mention how the content was obtained.

Website content:
%s

Question: %s

Answer:`, content, query)
}

// StripReasoning removes any chain-of-thought blocks from a model answer
// and trims surrounding whitespace.
func StripReasoning(answer string) string {
	return strings.TrimSpace(thinkRE.ReplaceAllString(answer, ""))
}
