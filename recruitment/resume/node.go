package resume

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/cvrelay/internal/textnorm"
)

// Node is one loosely typed formation or experience entry, keyed by the
// field names of the JSON source schema.
type Node map[string]any

// Source schema keys.
const (
	KeyLevel          = "nivel"
	KeyStatus         = "situacion"
	KeyProgram        = "carrera"
	KeyInstitution    = "institucion"
	KeyStart          = "inicio"
	KeyEnd            = "fin"
	KeyCourses        = "cursos"
	KeyRemarks        = "observaciones"
	KeyEmployer       = "empresa"
	KeyRole           = "cargo"
	KeyDuties         = "funciones"
	KeyReference      = "referencia"
	KeyReferencePhone = "telefonoReferencia"
)

// DateLayout is the calendar date format used in nodes and JSON sources.
const DateLayout = "2006-01-02"

// Text returns the trimmed value at key rendered as text. Missing, null and
// blank values report false.
func (n Node) Text(key string) (string, bool) {
	v, ok := n[key]
	if !ok || v == nil {
		return "", false
	}

	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case bool:
		s = strconv.FormatBool(t)
	case time.Time:
		s = t.Format(DateLayout)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if p, ok := (Node{"v": item}).Text("v"); ok {
				parts = append(parts, p)
			}
		}
		s = strings.Join(parts, "; ")
	default:
		s = fmt.Sprint(t)
	}

	s = strings.TrimSpace(s)
	return s, s != ""
}

func (n Node) TextOr(key, fallback string) string {
	if s, ok := n.Text(key); ok {
		return s
	}
	return fallback
}

func (n Node) OptText(key string) *string {
	if s, ok := n.Text(key); ok {
		return &s
	}
	return nil
}

// Date parses the value at key with ParseDate.
func (n Node) Date(key string) *time.Time {
	s, ok := n.Text(key)
	if !ok {
		return nil
	}
	return ParseDate(s)
}

// ParseDate accepts a full date, a year-month or a bare year; partial dates
// map to the first day of the period. Anything else, "Presente" included,
// is absent.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, "2006-01", "2006", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// ============================================================================
// Level and status vocabularies
// ============================================================================

var levelTriggers = []struct {
	level    EducationLevel
	triggers []string
}{
	{EducationLevelTechnical, []string{"tecnic"}},
	{EducationLevelHighSchool, []string{"bachiller"}},
	{EducationLevelBachelor, []string{"licenc"}},
	{EducationLevelMaster, []string{"maestr", "master"}},
	{EducationLevelDoctorate, []string{"doctor", "phd"}},
	{EducationLevelUniversity, []string{"ingenier", "universit"}},
}

// InferLevel derives the education level from a program or degree title,
// ignoring case and diacritics.
func InferLevel(title string) EducationLevel {
	folded := textnorm.Fold(title)
	for _, lt := range levelTriggers {
		for _, t := range lt.triggers {
			if strings.Contains(folded, t) {
				return lt.level
			}
		}
	}
	return EducationLevelNotSpecified
}

// ParseEducationLevel accepts a level constant or free text.
func ParseEducationLevel(s string) EducationLevel {
	switch l := EducationLevel(strings.ToUpper(strings.TrimSpace(s))); l {
	case EducationLevelTechnical, EducationLevelHighSchool, EducationLevelBachelor,
		EducationLevelMaster, EducationLevelDoctorate, EducationLevelUniversity,
		EducationLevelNotSpecified:
		return l
	}
	return InferLevel(s)
}

// ParseEducationStatus recognizes the status constants and their Spanish
// equivalents. The second result is false for anything else.
func ParseEducationStatus(s string) (EducationStatus, bool) {
	switch strings.NewReplacer(" ", "_", "-", "_").Replace(textnorm.Fold(strings.TrimSpace(s))) {
	case "in_progress", "en_curso", "cursando", "en_proceso":
		return EducationStatusInProgress, true
	case "completed", "concluido", "culminado", "egresado", "titulado", "completo":
		return EducationStatusCompleted, true
	}
	return "", false
}

func statusFromEnd(end *time.Time) EducationStatus {
	if end != nil {
		return EducationStatusCompleted
	}
	return EducationStatusInProgress
}

// ============================================================================
// Node conversion
// ============================================================================

// EducationFromNode builds a record, substituting defaults for absent fields.
func EducationFromNode(n Node) EducationRecord {
	program := n.OptText(KeyProgram)
	end := n.Date(KeyEnd)

	level := EducationLevelNotSpecified
	if s, ok := n.Text(KeyLevel); ok {
		level = ParseEducationLevel(s)
	}
	if level == EducationLevelNotSpecified && program != nil {
		level = InferLevel(*program)
	}

	status := statusFromEnd(end)
	if s, ok := n.Text(KeyStatus); ok {
		if parsed, ok := ParseEducationStatus(s); ok {
			status = parsed
		}
	}

	return EducationRecord{
		Institution: n.TextOr(KeyInstitution, DefaultInstitution),
		Program:     program,
		Level:       level,
		Status:      status,
		StartDate:   n.Date(KeyStart),
		EndDate:     end,
		Courses:     n.TextOr(KeyCourses, ""),
		Remarks:     n.OptText(KeyRemarks),
	}
}

// ExperienceFromNode builds a record, substituting defaults for absent fields.
func ExperienceFromNode(n Node) ExperienceRecord {
	return ExperienceRecord{
		Employer:         n.TextOr(KeyEmployer, DefaultEmployer),
		Role:             n.TextOr(KeyRole, DefaultRole),
		Responsibilities: n.TextOr(KeyDuties, ""),
		StartDate:        n.Date(KeyStart),
		EndDate:          n.Date(KeyEnd),
		ReferenceContact: n.OptText(KeyReference),
		ReferencePhone:   n.OptText(KeyReferencePhone),
	}
}
