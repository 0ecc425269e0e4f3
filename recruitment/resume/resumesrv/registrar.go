package resumesrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

// Registrar persists a normalized profile for a candidate, adding only the
// records the candidate does not have yet.
type Registrar struct {
	profiles resume.ProfileRepository
	locker   resume.CandidateLocker
	clock    kernel.Clock
}

func NewRegistrar(profiles resume.ProfileRepository, locker resume.CandidateLocker, clock kernel.Clock) *Registrar {
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return &Registrar{profiles: profiles, locker: locker, clock: clock}
}

// AlreadyProcessed reports whether the candidate holds any education,
// experience or skill record, whatever its origin.
func (r *Registrar) AlreadyProcessed(ctx context.Context, candidateID kernel.CandidateID) (bool, error) {
	var has bool
	err := r.profiles.WithinTx(ctx, func(ctx context.Context, store resume.ProfileStore) error {
		var err error
		has, err = store.HasAnyRecord(ctx, candidateID)
		return err
	})
	if err != nil {
		return false, resume.ErrRegistrationFailed().
			WithDetail("candidate_id", candidateID).
			WithCause(err)
	}
	return has, nil
}

// Register runs under the candidate's lock and inside one transaction. A
// candidate with any prior record is skipped as a whole. Missing start dates
// default to the registration day. A uniqueness conflict aborts the run with
// the retryable ErrDuplicateRecord and nothing is kept.
func (r *Registrar) Register(ctx context.Context, candidateID kernel.CandidateID, documentID *kernel.DocumentID, profile resume.NormalizedProfile) (resume.ProcessingSummary, error) {
	summary := resume.ProcessingSummary{
		CandidateID:      candidateID,
		SourceDocumentID: documentID,
	}

	release, err := r.locker.Lock(ctx, candidateID)
	if err != nil {
		return summary, err
	}
	defer release()

	now := r.clock.Now()
	today := kernel.Today(r.clock)

	var educations, experiences, skills int
	skipped := false

	err = r.profiles.WithinTx(ctx, func(ctx context.Context, store resume.ProfileStore) error {
		has, err := store.HasAnyRecord(ctx, candidateID)
		if err != nil {
			return err
		}
		if has {
			skipped = true
			return nil
		}

		for _, rec := range profile.Educations {
			rec.StartDate = dateOr(rec.StartDate, today)

			exists, err := store.EducationExists(ctx, candidateID, rec.Key())
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := store.SaveEducation(ctx, candidateID, rec, now); err != nil {
				return err
			}
			educations++
		}

		for _, rec := range profile.Experiences {
			rec.StartDate = dateOr(rec.StartDate, today)

			key := resume.ExperienceKey{Employer: rec.Employer, Role: rec.Role, StartDate: *rec.StartDate}
			exists, err := store.ExperienceExists(ctx, candidateID, key)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := store.SaveExperience(ctx, candidateID, rec, now); err != nil {
				return err
			}
			experiences++
		}

		linked := make(map[kernel.SkillID]bool, len(profile.Skills))
		for _, tag := range profile.Skills {
			if linked[tag.SkillID] {
				continue
			}
			exists, err := store.SkillLinkExists(ctx, candidateID, tag.SkillID)
			if err != nil {
				return err
			}
			if exists {
				linked[tag.SkillID] = true
				continue
			}
			if err := store.SaveSkillLink(ctx, candidateID, tag, now); err != nil {
				return err
			}
			linked[tag.SkillID] = true
			skills++
		}

		return nil
	})
	if err != nil {
		if errx.IsCode(err, resume.CodeDuplicateRecord) {
			logx.Warnf("Concurrent registration detected: CandidateID=%s, Error=%v", candidateID, err)
			return summary, err
		}
		return summary, resume.ErrRegistrationFailed().
			WithDetail("candidate_id", candidateID).
			WithCause(err)
	}

	if skipped {
		logx.Infof("Skipping candidate %s: education, experience or skill records already present", candidateID)
		summary.Outcome = resume.OutcomeAlreadyProcessed
		summary.Message = resume.MessageAlreadyProcessed
		return summary, nil
	}

	summary.EducationsAdded = educations
	summary.ExperiencesAdded = experiences
	summary.SkillsAdded = skills
	summary.Outcome = resume.OutcomeProcessed
	summary.Message = resume.MessageProcessed

	logx.Infof("Candidate %s registered: educations=%d, experiences=%d, skills=%d",
		candidateID, educations, experiences, skills)
	return summary, nil
}

func dateOr(d *time.Time, fallback time.Time) *time.Time {
	if d != nil {
		return d
	}
	return &fallback
}
