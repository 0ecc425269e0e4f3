package skill

import (
	"context"
	"strings"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
)

// Normalizer turns raw skill phrases into catalog tags.
type Normalizer struct {
	catalog  Catalog
	synonyms *SynonymTable
}

func NewNormalizer(catalog Catalog, synonyms *SynonymTable) *Normalizer {
	if synonyms == nil {
		synonyms = NewSynonymTable(DefaultSynonymRules()...)
	}
	return &Normalizer{catalog: catalog, synonyms: synonyms}
}

// Normalize emits one tag per distinct catalog skill matched by the phrases.
// A skill matched again by a later phrase keeps the level of the first.
// Candidate names missing from the catalog are dropped.
func (n *Normalizer) Normalize(ctx context.Context, phrases []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(phrases))
	seen := make(map[kernel.SkillID]bool)

	for _, raw := range phrases {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		level := DetectLevel(raw)
		cleaned := CleanPhrase(raw)

		for _, candidate := range n.synonyms.Expand(cleaned) {
			s, err := n.catalog.FindByName(ctx, candidate)
			if err != nil {
				if errx.IsCode(err, CodeSkillNotFound) {
					continue
				}
				return nil, err
			}
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			tags = append(tags, Tag{SkillID: s.ID, Name: s.Name, Level: level})
		}
	}

	return tags, nil
}
