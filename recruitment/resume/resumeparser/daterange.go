package resumeparser

import (
	"regexp"
	"strings"
	"time"

	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

var (
	// <role|program> <dash> <employer|institution>
	headerRe = regexp.MustCompile(`^(.+?)\s+[–—-]\s+(.+)$`)

	// YYYY <dash> YYYY|Presente|Actual; open-ended words include their
	// inflections ("Actualidad", "Actualmente").
	yearRangeRe = regexp.MustCompile(`(?i)\b(\d{4})\s*[–—-]\s*(\d{4}\b|(?:presente|actual|present|current)\pL*)`)
)

var emptyBrackets = strings.NewReplacer("()", "", "[]", "")

type dateRange struct {
	start *time.Time
	end   *time.Time
}

// findRange locates the first year range in s and returns it together with
// s minus the range text.
func findRange(s string) (dateRange, string, bool) {
	loc := yearRangeRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return dateRange{}, s, false
	}
	r := dateRange{
		start: parseYearToken(s[loc[2]:loc[3]]),
		end:   parseYearToken(s[loc[4]:loc[5]]),
	}
	rest := emptyBrackets.Replace(s[:loc[0]] + s[loc[1]:])
	rest = strings.TrimSpace(rest)
	return r, rest, true
}

// parseYearToken maps a four digit year to January 1; open-ended tokens and
// anything unparseable are absent.
func parseYearToken(tok string) *time.Time {
	if len(tok) != 4 {
		return nil
	}
	return resume.ParseDate(tok)
}

// header splits a record header line. Dashes inside a year range do not
// count as the separator, so "2019 - 2021" alone is not a header.
func header(line string) (left, right string, rng dateRange, hasRange, ok bool) {
	rng, masked, hasRange := findRange(line)
	m := headerRe.FindStringSubmatch(masked)
	if m == nil {
		return "", "", dateRange{}, false, false
	}
	left = strings.TrimSpace(m[1])
	right = trimSeparators(m[2])
	if left == "" || right == "" {
		return "", "", dateRange{}, false, false
	}
	return left, right, rng, hasRange, true
}

// rangeLine reports whether line carries a year range and is not itself a
// header.
func rangeLine(line string) (dateRange, bool) {
	if _, _, _, _, ok := header(line); ok {
		return dateRange{}, false
	}
	r, _, ok := findRange(line)
	return r, ok
}

func trimSeparators(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ",;|(–—-"))
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(resume.DateLayout)
}

// nextContentLine returns the index of the first non-blank line after i, or
// -1.
func nextContentLine(lines []string, i int) int {
	for j := i + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			return j
		}
	}
	return -1
}
