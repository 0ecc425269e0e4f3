package jobinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/job"
	"github.com/jmoiron/sqlx"
)

type PostgresJobRepository struct {
	db *sqlx.DB
}

var _ job.Repository = (*PostgresJobRepository)(nil)

func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// GetByID retrieves a vacancy by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `
		SELECT id, job_title, status, created_at, updated_at
		FROM jobs
		WHERE id = $1`

	var j job.Job
	if err := r.db.GetContext(ctx, &j, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id)
		}
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal).
			WithDetail("job_id", id)
	}
	return &j, nil
}
