package skill

import "github.com/Abraxas-365/cvrelay/pkg/kernel"

type Type string

const (
	TypeTechnical Type = "TECHNICAL"
	TypeSoft      Type = "SOFT"
)

// Skill is a catalog entry. Name is the canonical spelling.
type Skill struct {
	ID          kernel.SkillID `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description,omitempty"`
	Category    string         `db:"category" json:"category,omitempty"`
	Type        Type           `db:"skill_type" json:"type"`
	Active      bool           `db:"active" json:"active"`
}

// Level is a proficiency level detected next to a skill phrase.
type Level string

const (
	LevelBasic        Level = "BASIC"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
	LevelExpert       Level = "EXPERT"
	LevelJunior       Level = "JUNIOR"
	LevelSenior       Level = "SENIOR"
)

func (l Level) Ptr() *Level { return &l }

// Tag links a matched catalog skill to the level found for it, if any.
type Tag struct {
	SkillID kernel.SkillID `json:"skill_id"`
	Name    string         `json:"name"`
	Level   *Level         `json:"level,omitempty"`
}
