package skill

import (
	"regexp"
	"strings"

	"github.com/Abraxas-365/cvrelay/internal/textnorm"
)

var levelKeywords = []struct {
	keyword string
	level   Level
}{
	{"basico", LevelBasic},
	{"intermedio", LevelIntermediate},
	{"avanzado", LevelAdvanced},
	{"experto", LevelExpert},
}

var (
	juniorRe = regexp.MustCompile(`\b(junior|jr)\b`)
	seniorRe = regexp.MustCompile(`\b(senior|sr)\b`)

	levelParenRe   = regexp.MustCompile(`\((?i:[^)]*(?:basico|básico|intermedio|avanzado|experto|junior|jr|senior|sr)[^)]*)\)`)
	levelWordRe    = regexp.MustCompile(`(?i)\b(?:nivel\s+)?(?:basico|básico|intermedio|avanzado|experto|junior|jr|senior|sr)\b`)
	trailingDashRe = regexp.MustCompile(`[-–—]\s*$`)
	spacesRe       = regexp.MustCompile(`\s{2,}`)
)

// DetectLevel scans the phrase, ignoring case and diacritics, for a level
// keyword. The first keyword in priority order wins.
func DetectLevel(phrase string) *Level {
	folded := textnorm.Fold(phrase)
	for _, kw := range levelKeywords {
		if strings.Contains(folded, kw.keyword) {
			return kw.level.Ptr()
		}
	}
	if juniorRe.MatchString(folded) {
		return LevelJunior.Ptr()
	}
	if seniorRe.MatchString(folded) {
		return LevelSenior.Ptr()
	}
	return nil
}

// CleanPhrase removes level annotations from a skill phrase, leaving the
// skill itself: "Excel (Avanzado)" and "Excel nivel avanzado" both give "Excel".
func CleanPhrase(phrase string) string {
	s := textnorm.Compose(phrase)
	s = levelParenRe.ReplaceAllString(s, "")
	s = levelWordRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = trailingDashRe.ReplaceAllString(s, "")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
