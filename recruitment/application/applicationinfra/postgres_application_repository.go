package applicationinfra

import (
	"context"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresApplicationRepository struct {
	db *sqlx.DB
}

var _ application.Repository = (*PostgresApplicationRepository)(nil)

func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) ListAwaitingResumeReview(ctx context.Context, jobID kernel.JobID) ([]*application.Application, error) {
	query := `
		SELECT id, job_id, candidate_id, stage, status, created_at, updated_at
		FROM applications
		WHERE job_id = $1
		  AND stage = $2
		  AND status <> ALL($3)
		ORDER BY created_at ASC`

	inactive := pq.Array([]string{
		string(application.ApplicationStatusRejected),
		string(application.ApplicationStatusWithdrawn),
		string(application.ApplicationStatusArchived),
	})

	var apps []*application.Application
	if err := r.db.SelectContext(ctx, &apps, query, jobID.String(), application.ApplicationStageResumeReview, inactive); err != nil {
		return nil, errx.Wrap(err, "failed to list applications in resume review", errx.TypeInternal).
			WithDetail("job_id", jobID)
	}
	return apps, nil
}
