package resumeparser

import (
	"strings"

	"github.com/Abraxas-365/cvrelay/internal/textnorm"
)

var bulletGlyphs = strings.NewReplacer("•", "-", "–", "-", "—", "-", "·", "-", "▪", "-", "●", "-")

// SkillPhrases splits a skills section into raw phrases. Bulleted lines
// yield their text after the bullet; plain lines are kept verbatim unless
// they repeat one of the headings.
func SkillPhrases(section string, headings ...string) []string {
	phrases := []string{}

	for _, raw := range splitLines(section) {
		line := strings.TrimSpace(bulletGlyphs.Replace(raw))
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "-") {
			if p := strings.TrimSpace(strings.TrimLeft(line, "-")); p != "" {
				phrases = append(phrases, p)
			}
			continue
		}

		if isHeading(line, headings) {
			continue
		}
		phrases = append(phrases, line)
	}

	return phrases
}

func isHeading(line string, headings []string) bool {
	folded := textnorm.Fold(strings.TrimRight(line, ":"))
	for _, h := range headings {
		if folded == textnorm.Fold(h) {
			return true
		}
	}
	return false
}
