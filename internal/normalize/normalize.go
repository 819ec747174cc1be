// Package normalize canonicalizes sender and service names so that the
// same merchant seen through different surfaces ("OpenAI, Inc.", "Open-AI",
// "openai") collapses to one matching key.
package normalize

import (
	"strings"
	"unicode"
)

// legalSuffixes are trailing entity markers stripped from company names.
var legalSuffixes = map[string]bool{
	"inc":  true,
	"inc.": true,
	"llc":  true,
	"ltd":  true,
	"ltd.": true,
	"pbc":  true,
	"co":   true,
	"co.":  true,
	"corp": true,
	"gmbh": true,
}

// Normalize canonicalizes a sender or service name: lowercase, trimmed,
// internal whitespace collapsed, any suffix after a comma dropped, a
// trailing legal-entity token dropped, and punctuation removed so that
// hyphenated or dotted names merge into one token.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	// Everything after a comma is a legal or descriptive suffix.
	if idx := strings.Index(s, ","); idx >= 0 {
		s = s[:idx]
	}

	fields := strings.Fields(s)
	if n := len(fields); n > 1 && legalSuffixes[fields[n-1]] {
		fields = fields[:n-1]
	}
	s = strings.Join(fields, " ")

	// Drop punctuation entirely so "open-ai" and "open.ai" become "openai".
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NamesMatch reports whether two names refer to the same service: their
// normalized forms are equal, or one is a non-empty substring of the other.
// An empty name never matches anything.
func NamesMatch(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
