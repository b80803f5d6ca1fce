package sitechat

import (
	"regexp"
	"strings"
)

var (
	urlPattern   = regexp.MustCompile(`https?://\S+`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	// Conservative allow-list: word characters, whitespace, and basic
	// punctuation. Everything else is noise for embedding purposes.
	disallowedPattern = regexp.MustCompile(`[^\w\s.,!?;:\-()]`)
)

// Normalize cleans raw extracted text into the canonical form used for
// indexing: whitespace runs collapse to single spaces, characters outside
// the allow-list are stripped, and URL- and email-shaped substrings are
// removed. Normalize is a pure function and is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := urlPattern.ReplaceAllString(raw, " ")
	s = emailPattern.ReplaceAllString(s, " ")
	s = disallowedPattern.ReplaceAllString(s, "")

	// Collapse whitespace and trim in one pass.
	return strings.Join(strings.Fields(s), " ")
}

// WordCount returns the number of whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
