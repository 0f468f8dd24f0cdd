package dict

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher tests entries for a case-insensitive substring match against a
// fixed needle. Case insensitivity uses full Unicode case folding, so
// "CASA" matches "casa" and "É" matches "é".
//
// A Matcher is not safe for concurrent use; each search builds its own.
type Matcher struct {
	caser  cases.Caser
	needle string
	langs  []Language
}

// NewMatcher creates a Matcher for text, restricted to the given languages.
// An empty langs slice means every supported language is checked.
func NewMatcher(text string, langs []Language) *Matcher {
	if len(langs) == 0 {
		langs = languages
	}
	c := cases.Fold()
	return &Matcher{
		caser:  c,
		needle: c.String(text),
		langs:  langs,
	}
}

// Matches reports whether e contains the needle in at least one of the
// matcher's languages. Absent language fields never match.
func (m *Matcher) Matches(e *Entry) bool {
	for _, lang := range m.langs {
		s := e.Text(lang)
		if s == nil {
			continue
		}
		if strings.Contains(m.caser.String(*s), m.needle) {
			return true
		}
	}
	return false
}
