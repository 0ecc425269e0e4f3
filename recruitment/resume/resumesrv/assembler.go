package resumesrv

import (
	"context"

	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/Abraxas-365/cvrelay/recruitment/skill"
)

// Assembler converts raw extraction output into a NormalizedProfile.
type Assembler struct {
	normalizer *skill.Normalizer
}

func NewAssembler(normalizer *skill.Normalizer) *Assembler {
	return &Assembler{normalizer: normalizer}
}

func (a *Assembler) Assemble(ctx context.Context, raw resume.ExternalProfile) (resume.NormalizedProfile, error) {
	educations := make([]resume.EducationRecord, 0, len(raw.Formation))
	for _, n := range raw.Formation {
		if n == nil {
			continue
		}
		educations = append(educations, resume.EducationFromNode(n))
	}

	experiences := make([]resume.ExperienceRecord, 0, len(raw.Experiences))
	for _, n := range raw.Experiences {
		if n == nil {
			continue
		}
		experiences = append(experiences, resume.ExperienceFromNode(n))
	}

	tags, err := a.normalizer.Normalize(ctx, raw.Skills)
	if err != nil {
		return resume.NormalizedProfile{}, err
	}

	return resume.NewNormalizedProfile(educations, experiences, tags), nil
}
