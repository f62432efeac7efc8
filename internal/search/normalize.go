package search

import (
	"strings"
)

// Normalize prepares text for vectorization: lowercase, keep only latin
// letters and whitespace, collapse whitespace runs. The same transform runs
// over catalog titles at index time and over every query, so both end up in
// the same vector space.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits normalized text into terms, dropping stopwords
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	var tokens []string
	for _, field := range fields {
		if _, stop := stopwords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// stopwords are high-frequency english words that carry no product signal
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {},
	"to": {}, "was": {}, "were": {}, "will": {}, "with": {}, "this": {},
	"these": {}, "those": {}, "not": {}, "no": {}, "but": {}, "if": {},
	"then": {}, "than": {}, "so": {}, "too": {}, "very": {}, "can": {},
	"into": {}, "over": {}, "under": {}, "again": {},
}
