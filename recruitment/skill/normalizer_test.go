package skill_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/skill"
	"github.com/Abraxas-365/cvrelay/recruitment/skill/skillinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog(names ...string) *skillinfra.MemoryCatalog {
	c := skillinfra.NewMemoryCatalog()
	for _, n := range names {
		c.Put(skill.Skill{ID: kernel.NewSkillID("sk-" + n), Name: n, Type: skill.TypeTechnical, Active: true})
	}
	return c
}

func TestNormalizeLevelIsIndependentOfName(t *testing.T) {
	n := skill.NewNormalizer(catalog("Excel Avanzado"), nil)

	tags, err := n.Normalize(context.Background(), []string{"Excel (Avanzado)"})
	require.NoError(t, err)
	require.Len(t, tags, 1)

	assert.Equal(t, "Excel Avanzado", tags[0].Name)
	require.NotNil(t, tags[0].Level)
	assert.Equal(t, skill.LevelAdvanced, *tags[0].Level)
	assert.Equal(t, "Excel", skill.CleanPhrase("Excel (Avanzado)"))
}

func TestNormalizeDedupsWithinBatch(t *testing.T) {
	n := skill.NewNormalizer(catalog("Excel Avanzado"), nil)

	tags, err := n.Normalize(context.Background(), []string{"Excel", "excel avanzado", "EXCEL"})
	require.NoError(t, err)
	require.Len(t, tags, 1)

	assert.Equal(t, kernel.SkillID("sk-Excel Avanzado"), tags[0].SkillID)
	assert.Nil(t, tags[0].Level, "level comes from the first phrase that matched")
}

func TestNormalizeEmitsEveryMatchedCandidate(t *testing.T) {
	n := skill.NewNormalizer(catalog("Excel", "Excel Avanzado", "Microsoft Office", "Trabajo en equipo"), nil)

	tags, err := n.Normalize(context.Background(), []string{"Excel y Word", "", "Trabajo en equipo", "Liderazgo"})
	require.NoError(t, err)

	var names []string
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"Excel Avanzado", "Microsoft Office", "Trabajo en equipo"}, names)
}

func TestNormalizeSkipsInactiveSkills(t *testing.T) {
	c := skillinfra.NewMemoryCatalog(skill.Skill{ID: "sk-1", Name: "COBOL", Active: false})
	n := skill.NewNormalizer(c, nil)

	tags, err := n.Normalize(context.Background(), []string{"COBOL"})
	require.NoError(t, err)
	assert.Empty(t, tags)
}

type failingCatalog struct{}

func (failingCatalog) FindByName(ctx context.Context, name string) (*skill.Skill, error) {
	return nil, errors.New("connection refused")
}

func TestNormalizePropagatesCatalogFailures(t *testing.T) {
	n := skill.NewNormalizer(failingCatalog{}, nil)

	_, err := n.Normalize(context.Background(), []string{"Excel"})
	assert.Error(t, err)
}

// lowerCatalog matches names with LOWER(name) = LOWER($1): case-insensitive,
// accent-sensitive.
type lowerCatalog []skill.Skill

func (c lowerCatalog) FindByName(ctx context.Context, name string) (*skill.Skill, error) {
	for i := range c {
		if strings.ToLower(c[i].Name) == strings.ToLower(name) {
			return &c[i], nil
		}
	}
	return nil, skill.ErrSkillNotFound().WithDetail("name", name)
}

func TestNormalizeFindsAccentedNamesFromUnaccentedPhrases(t *testing.T) {
	c := lowerCatalog{
		{ID: "sk-atc", Name: "Atención al Cliente", Type: skill.TypeSoft, Active: true},
		{ID: "sk-com", Name: "Comunicación", Type: skill.TypeSoft, Active: true},
	}
	n := skill.NewNormalizer(c, nil)

	tags, err := n.Normalize(context.Background(), []string{"Atencion al cliente", "Comunicacion efectiva"})
	require.NoError(t, err)

	var ids []kernel.SkillID
	for _, tag := range tags {
		ids = append(ids, tag.SkillID)
	}
	assert.Equal(t, []kernel.SkillID{"sk-atc", "sk-com"}, ids)
}
