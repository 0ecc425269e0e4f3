// Package textnorm holds the Unicode normalization used when reading
// rendered documents and when matching keywords against them.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Compose returns s in canonical composition form (NFC).
func Compose(s string) string {
	return norm.NFC.String(s)
}

// StripMarks removes combining marks after canonical decomposition, so
// "Formación" becomes "Formacion". Case is preserved.
func StripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold strips marks and lower-cases s. Folded strings compare equal when
// they differ only in case or diacritics.
func Fold(s string) string {
	return strings.ToLower(StripMarks(s))
}

// FoldRune maps r to its lower-case base letter.
func FoldRune(r rune) rune {
	if r < 0x80 {
		return unicode.ToLower(r)
	}
	decomposed := norm.NFD.String(string(r))
	for _, d := range decomposed {
		return unicode.ToLower(d)
	}
	return unicode.ToLower(r)
}

// IndexFold returns the byte offsets [start, end) in s of the first match of
// substr at or after from, comparing rune by rune with FoldRune. It returns
// -1, -1 when there is no match.
func IndexFold(s, substr string, from int) (int, int) {
	if substr == "" || from < 0 || from > len(s) {
		return -1, -1
	}
	for i := from; i < len(s); {
		if end, ok := hasPrefixFold(s[i:], substr); ok {
			return i, i + end
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1, -1
}

func hasPrefixFold(s, prefix string) (int, bool) {
	pos := 0
	for _, pr := range prefix {
		if pos >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[pos:])
		if FoldRune(sr) != FoldRune(pr) {
			return 0, false
		}
		pos += size
	}
	return pos, true
}
