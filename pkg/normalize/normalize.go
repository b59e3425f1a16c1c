// Package normalize canonicalizes extracted PDF text for search and matching.
//
// The normalized form is lowercase ASCII letters, digits and single spaces.
// Punctuation is deleted rather than replaced, so "it's" becomes "its" and
// "test@example.com" becomes "testexamplecom". Downstream consumers match on
// these merged forms.
package normalize

import (
	"strings"
	"unicode"
)

// Normalize converts text into its canonical comparison form.
//
// The steps are applied in order: lowercase, delete every rune that is not
// a-z, 0-9 or whitespace, collapse whitespace runs into one space, trim.
// Normalize is total and safe for concurrent use.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))

	// pending is set when whitespace was seen since the last kept rune.
	// Deleted runes do not reset it, so "a , b" collapses to "a b".
	pending := false
	for _, r := range lowered {
		switch {
		case isKept(r):
			if pending && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pending = false
			b.WriteRune(r)
		case isSpace(r):
			pending = true
		}
	}

	return b.String()
}

// isKept reports whether r survives the deletion step
func isKept(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// isSpace matches the regex \s class used by the reference normalizer:
// Unicode whitespace plus the ASCII information separators U+001C..U+001F.
func isSpace(r rune) bool {
	if r >= 0x1c && r <= 0x1f {
		return true
	}
	return unicode.IsSpace(r)
}
