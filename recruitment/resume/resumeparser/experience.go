package resumeparser

import (
	"strings"
	"time"

	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

// Experience is one work-experience entry read from text.
type Experience struct {
	Role     string
	Employer string
	Start    *time.Time
	End      *time.Time
	Duties   []string
}

// Node converts the entry to the source schema shape.
func (e Experience) Node() resume.Node {
	n := resume.Node{
		resume.KeyRole:     e.Role,
		resume.KeyEmployer: e.Employer,
		resume.KeyDuties:   strings.Join(e.Duties, "; "),
	}
	if e.Start != nil {
		n[resume.KeyStart] = formatDate(e.Start)
	}
	if e.End != nil {
		n[resume.KeyEnd] = formatDate(e.End)
	}
	return n
}

// ParseExperience scans text line by line. A "<role> - <employer>" line
// opens a record; its dates come from a year range inside the header or on
// the next content line, otherwise they stay absent. "-" lines add duties to
// the open record. Other lines are ignored.
func ParseExperience(text string) []Experience {
	lines := splitLines(text)
	out := []Experience{}

	var cur *Experience
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

		if strings.HasPrefix(line, "-") {
			if duty := strings.TrimSpace(line[1:]); cur != nil && duty != "" {
				cur.Duties = append(cur.Duties, duty)
			}
			continue
		}

		role, employer, rng, hasRange, ok := header(line)
		if !ok {
			continue
		}

		flush()
		cur = &Experience{Role: role, Employer: employer, Duties: []string{}}

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
	}
	flush()

	return out
}
