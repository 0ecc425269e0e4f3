package skill

import "context"

// Catalog is the read-only skill catalog.
type Catalog interface {
	// FindByName matches name case-insensitively against canonical names.
	// It returns ErrSkillNotFound when nothing matches.
	FindByName(ctx context.Context, name string) (*Skill, error)
}
