package candidateinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/candidate"
	"github.com/jmoiron/sqlx"
)

type PostgresCandidateRepository struct {
	db *sqlx.DB
}

var _ candidate.Repository = (*PostgresCandidateRepository)(nil)

func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

// GetByID retrieves a candidate by ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	query := `
		SELECT id, email, first_name, last_name, status, created_at, updated_at
		FROM candidates
		WHERE id = $1`

	var c candidate.Candidate
	if err := r.db.GetContext(ctx, &c, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id)
		}
		return nil, errx.Wrap(err, "failed to get candidate", errx.TypeInternal).
			WithDetail("candidate_id", id)
	}
	return &c, nil
}
