package resumeparser

import (
	"strings"
	"time"

	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

// Education is one academic entry read from text.
type Education struct {
	Program     string
	Institution string
	Start       *time.Time
	End         *time.Time
	Details     []string
}

func (e Education) Level() resume.EducationLevel {
	return resume.InferLevel(e.Program)
}

func (e Education) Status() resume.EducationStatus {
	if e.End != nil {
		return resume.EducationStatusCompleted
	}
	return resume.EducationStatusInProgress
}

func (e Education) Node() resume.Node {
	n := resume.Node{
		resume.KeyProgram:     e.Program,
		resume.KeyInstitution: e.Institution,
		resume.KeyLevel:       string(e.Level()),
		resume.KeyStatus:      string(e.Status()),
		resume.KeyCourses:     strings.Join(e.Details, "; "),
	}
	if e.Start != nil {
		n[resume.KeyStart] = formatDate(e.Start)
	}
	if e.End != nil {
		n[resume.KeyEnd] = formatDate(e.End)
	}
	return n
}

// ParseEducation follows the same shape as ParseExperience with
// "<program> - <institution>" headers. A year range on a later line still
// sets the open record's dates, and every other line of the record is kept
// as a detail.
func ParseEducation(text string) []Education {
	lines := splitLines(text)
	out := []Education{}

	var cur *Education
	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "-") {
			if program, institution, rng, hasRange, ok := header(line); ok {
				flush()
				cur = &Education{Program: program, Institution: institution, Details: []string{}}

				if !hasRange {
					if j := nextContentLine(lines, i); j >= 0 {
						if r, ok := rangeLine(strings.TrimSpace(lines[j])); ok {
							rng, hasRange = r, true
							i = j
						}
					}
				}
				if hasRange {
					cur.Start, cur.End = rng.start, rng.end
				}
				continue
			}
		}

		if cur == nil {
			continue
		}

		if r, rest, ok := findRange(line); ok && strings.Trim(rest, " ,;|-–—") == "" {
			cur.Start, cur.End = r.start, r.end
			continue
		}

		if detail := strings.TrimSpace(strings.TrimPrefix(line, "-")); detail != "" {
			cur.Details = append(cur.Details, detail)
		}
	}
	flush()

	return out
}
