package resumeparser

import (
	"strings"

	"github.com/Abraxas-365/cvrelay/internal/textnorm"
)

// ExtractSection returns the text between the first occurrence of start and
// the nearest following occurrence of any of ends, trimmed. Headings match
// ignoring case and diacritics. Without start the result is empty; without
// any end the section runs to the end of text.
func ExtractSection(text, start string, ends ...string) string {
	text = strings.ReplaceAll(text, "\r", "")

	_, bodyStart := textnorm.IndexFold(text, start, 0)
	if bodyStart < 0 {
		return ""
	}

	bodyEnd := len(text)
	for _, end := range ends {
		if pos, _ := textnorm.IndexFold(text, end, bodyStart); pos >= 0 && pos < bodyEnd {
			bodyEnd = pos
		}
	}
	if bodyEnd <= bodyStart {
		return ""
	}
	return strings.TrimSpace(text[bodyStart:bodyEnd])
}

// FirstSection tries each start heading in order and returns the first
// non-empty section.
func FirstSection(text string, starts []string, ends ...string) string {
	for _, start := range starts {
		if s := ExtractSection(text, start, ends...); s != "" {
			return s
		}
	}
	return ""
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
}
