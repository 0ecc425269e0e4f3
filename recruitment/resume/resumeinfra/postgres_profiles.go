package resumeinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/Abraxas-365/cvrelay/recruitment/skill"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// PostgresProfileRepository stores candidate education, experience and
// skill rows. Uniqueness is enforced by the tables' unique constraints.
type PostgresProfileRepository struct {
	db *sqlx.DB
}

var _ resume.ProfileRepository = (*PostgresProfileRepository)(nil)

func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, store resume.ProfileStore) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errx.Wrap(err, "failed to begin transaction", errx.TypeInternal)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logx.Warnf("Rollback failed: %v", err)
		}
	}()

	if err := fn(ctx, &profileStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapWriteError(err, "commit")
	}
	return nil
}

// profileStore runs every statement on one transaction.
type profileStore struct {
	tx *sqlx.Tx
}

var _ resume.ProfileStore = (*profileStore)(nil)

func (s *profileStore) HasAnyRecord(ctx context.Context, candidateID kernel.CandidateID) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM candidate_educations WHERE candidate_id = $1)
			OR EXISTS (SELECT 1 FROM candidate_experiences WHERE candidate_id = $1)
			OR EXISTS (SELECT 1 FROM candidate_skills WHERE candidate_id = $1)`

	var exists bool
	if err := s.tx.GetContext(ctx, &exists, query, candidateID); err != nil {
		return false, errx.Wrap(err, "failed to check existing records", errx.TypeInternal).
			WithDetail("candidate_id", candidateID)
	}
	return exists, nil
}

// ============================================================================
// Education
// ============================================================================

func (s *profileStore) EducationExists(ctx context.Context, candidateID kernel.CandidateID, key resume.EducationKey) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM candidate_educations
			WHERE candidate_id = $1
				AND institution = $2
				AND program IS NOT DISTINCT FROM $3
				AND level = $4
				AND status = $5
		)`

	var exists bool
	err := s.tx.GetContext(ctx, &exists, query,
		candidateID, key.Institution, nullString(key.Program), key.Level, key.Status)
	if err != nil {
		return false, errx.Wrap(err, "failed to check education", errx.TypeInternal).
			WithDetail("candidate_id", candidateID)
	}
	return exists, nil
}

func (s *profileStore) SaveEducation(ctx context.Context, candidateID kernel.CandidateID, rec resume.EducationRecord, createdAt time.Time) error {
	query := `
		INSERT INTO candidate_educations (
			id, candidate_id, institution, program, level, status,
			start_date, end_date, courses, remarks, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.tx.ExecContext(ctx, query,
		kernel.NewRecordID(),
		candidateID,
		rec.Institution,
		nullString(rec.Program),
		rec.Level,
		rec.Status,
		nullTime(rec.StartDate),
		nullTime(rec.EndDate),
		rec.Courses,
		nullString(rec.Remarks),
		createdAt,
	)
	if err != nil {
		return mapWriteError(err, "insert education").WithDetail("candidate_id", candidateID)
	}
	return nil
}

// ============================================================================
// Experience
// ============================================================================

func (s *profileStore) ExperienceExists(ctx context.Context, candidateID kernel.CandidateID, key resume.ExperienceKey) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM candidate_experiences
			WHERE candidate_id = $1 AND employer = $2 AND role = $3 AND start_date = $4
		)`

	var exists bool
	if err := s.tx.GetContext(ctx, &exists, query, candidateID, key.Employer, key.Role, key.StartDate); err != nil {
		return false, errx.Wrap(err, "failed to check experience", errx.TypeInternal).
			WithDetail("candidate_id", candidateID)
	}
	return exists, nil
}

func (s *profileStore) SaveExperience(ctx context.Context, candidateID kernel.CandidateID, rec resume.ExperienceRecord, createdAt time.Time) error {
	query := `
		INSERT INTO candidate_experiences (
			id, candidate_id, employer, role, responsibilities,
			start_date, end_date, reference_contact, reference_phone, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.tx.ExecContext(ctx, query,
		kernel.NewRecordID(),
		candidateID,
		rec.Employer,
		rec.Role,
		rec.Responsibilities,
		nullTime(rec.StartDate),
		nullTime(rec.EndDate),
		nullString(rec.ReferenceContact),
		nullString(rec.ReferencePhone),
		createdAt,
	)
	if err != nil {
		return mapWriteError(err, "insert experience").WithDetail("candidate_id", candidateID)
	}
	return nil
}

// ============================================================================
// Skills
// ============================================================================

func (s *profileStore) SkillLinkExists(ctx context.Context, candidateID kernel.CandidateID, skillID kernel.SkillID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM candidate_skills WHERE candidate_id = $1 AND skill_id = $2)`

	var exists bool
	if err := s.tx.GetContext(ctx, &exists, query, candidateID, skillID); err != nil {
		return false, errx.Wrap(err, "failed to check skill link", errx.TypeInternal).
			WithDetail("candidate_id", candidateID).
			WithDetail("skill_id", skillID)
	}
	return exists, nil
}

func (s *profileStore) SaveSkillLink(ctx context.Context, candidateID kernel.CandidateID, tag skill.Tag, registeredAt time.Time) error {
	query := `
		INSERT INTO candidate_skills (candidate_id, skill_id, level, registered_at)
		VALUES ($1, $2, $3, $4)`

	var level *string
	if tag.Level != nil {
		l := string(*tag.Level)
		level = &l
	}

	_, err := s.tx.ExecContext(ctx, query, candidateID, tag.SkillID, nullString(level), registeredAt)
	if err != nil {
		return mapWriteError(err, "insert skill link").
			WithDetail("candidate_id", candidateID).
			WithDetail("skill_id", tag.SkillID)
	}
	return nil
}

// mapWriteError turns unique violations into the retryable duplicate error.
func mapWriteError(err error, op string) *errx.Error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return resume.ErrDuplicateRecord().
			WithDetail("constraint", pqErr.Constraint).
			WithDetail("operation", op).
			WithCause(err)
	}
	return errx.Wrap(err, "failed to "+op, errx.TypeInternal)
}
