package resumeparser

import (
	"strings"

	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

// Headings are the section labels searched for in rendered text.
type Headings struct {
	Experience     string
	ExperienceEnds []string

	Education     []string
	EducationEnds []string

	Skills         []string // read together
	SkillsFallback string   // used when Skills are all empty
	SkillsEnds     []string
}

// DefaultHeadings holds the Spanish labels used by the resumes this service
// receives.
func DefaultHeadings() Headings {
	return Headings{
		Experience:     "Experiencia Laboral",
		ExperienceEnds: []string{"Habilidades"},

		Education:     []string{"Formación Profesional", "Formación Académica", "Educación"},
		EducationEnds: []string{"Perfil", "Experiencia", "Habilidades"},

		Skills:         []string{"Habilidades Técnicas", "Habilidades Blandas"},
		SkillsFallback: "Habilidades",
		SkillsEnds:     []string{"Habilidades", "Perfil", "Experiencia Laboral"},
	}
}

// Parser splits rendered resume text into sections by heading and parses
// each one.
type Parser struct {
	headings Headings
}

// New returns a Parser that looks for the given headings.
func New(headings Headings) *Parser {
	return &Parser{headings: headings}
}

// NewDefault returns a Parser using DefaultHeadings.
func NewDefault() *Parser {
	return New(DefaultHeadings())
}

// Parse reads experiences, education and skill phrases out of rendered
// resume text. Blank text yields an empty profile.
func (p *Parser) Parse(text string) resume.ExternalProfile {
	profile := resume.EmptyProfile()
	if strings.TrimSpace(text) == "" {
		return profile
	}

	for _, e := range p.Experiences(text) {
		profile.Experiences = append(profile.Experiences, e.Node())
	}
	for _, e := range p.Education(text) {
		profile.Formation = append(profile.Formation, e.Node())
	}
	profile.Skills = append(profile.Skills, p.SkillPhrases(text)...)

	return profile
}

// Experiences parses the experience section, or the whole text when the
// section yields no records.
func (p *Parser) Experiences(text string) []Experience {
	section := ExtractSection(text, p.headings.Experience, p.headings.ExperienceEnds...)
	if section != "" {
		if records := ParseExperience(section); len(records) > 0 {
			return records
		}
	}
	return ParseExperience(text)
}

// Education parses the first non-empty education section, or the whole text
// when there is none.
func (p *Parser) Education(text string) []Education {
	section := FirstSection(text, p.headings.Education, p.headings.EducationEnds...)
	if section == "" {
		section = text
	}
	return ParseEducation(section)
}

// SkillPhrases collects phrases from every skills section. When none is
// present it falls back to the generic skills heading.
func (p *Parser) SkillPhrases(text string) []string {
	var parts []string
	for _, h := range p.headings.Skills {
		if s := ExtractSection(text, h, p.headings.SkillsEnds...); s != "" {
			parts = append(parts, s)
		}
	}

	headings := append([]string{p.headings.SkillsFallback}, p.headings.Skills...)
	if len(parts) == 0 {
		section := ExtractSection(text, p.headings.SkillsFallback, p.headings.SkillsEnds...)
		return SkillPhrases(section, headings...)
	}
	return SkillPhrases(strings.Join(parts, "\n"), headings...)
}
