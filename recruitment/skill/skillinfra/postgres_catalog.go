package skillinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/skill"
	"github.com/jmoiron/sqlx"
)

type PostgresCatalog struct {
	db *sqlx.DB
}

var _ skill.Catalog = (*PostgresCatalog)(nil)

func NewPostgresCatalog(db *sqlx.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

type skillRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Category    sql.NullString `db:"category"`
	SkillType   string         `db:"skill_type"`
	Active      bool           `db:"active"`
}

func (r *skillRow) ToDomain() *skill.Skill {
	return &skill.Skill{
		ID:          kernel.NewSkillID(r.ID),
		Name:        r.Name,
		Description: r.Description.String,
		Category:    r.Category.String,
		Type:        skill.Type(r.SkillType),
		Active:      r.Active,
	}
}

func (c *PostgresCatalog) FindByName(ctx context.Context, name string) (*skill.Skill, error) {
	query := `
		SELECT id, name, description, category, skill_type, active
		FROM skills
		WHERE LOWER(name) = LOWER($1) AND active = TRUE
		ORDER BY id
		LIMIT 1`

	var row skillRow
	if err := c.db.GetContext(ctx, &row, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, skill.ErrSkillNotFound().WithDetail("name", name)
		}
		return nil, errx.Wrap(err, "failed to query skill catalog", errx.TypeInternal).
			WithDetail("name", name)
	}
	return row.ToDomain(), nil
}
