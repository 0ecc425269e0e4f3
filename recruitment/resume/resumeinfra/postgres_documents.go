package resumeinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/jmoiron/sqlx"
)

type PostgresDocumentRepository struct {
	db *sqlx.DB
}

var _ resume.DocumentRepository = (*PostgresDocumentRepository)(nil)

func NewPostgresDocumentRepository(db *sqlx.DB) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db}
}

// GetLatestByCandidate returns the most recently uploaded document
func (r *PostgresDocumentRepository) GetLatestByCandidate(ctx context.Context, candidateID kernel.CandidateID) (*resume.SourceDocument, error) {
	query := `
		SELECT id, candidate_id, file_name, file_path, file_type, size_bytes,
			source, source_url, inline_content, status, uploaded_at, processed_at
		FROM resume_documents
		WHERE candidate_id = $1
		ORDER BY uploaded_at DESC, id DESC
		LIMIT 1`

	var row documentRow
	if err := r.db.GetContext(ctx, &row, query, candidateID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrSourceDocumentNotFound().
				WithDetail("candidate_id", candidateID)
		}
		return nil, errx.Wrap(err, "failed to load source document", errx.TypeInternal).
			WithDetail("candidate_id", candidateID)
	}
	return row.ToDomain(), nil
}

// Create inserts a new document; documents are never updated in place
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *resume.SourceDocument) error {
	query := `
		INSERT INTO resume_documents (
			id, candidate_id, file_name, file_path, file_type, size_bytes,
			source, source_url, inline_content, status, uploaded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.CandidateID,
		doc.FileName,
		doc.FilePath,
		doc.FileType,
		doc.SizeBytes,
		nullString(&doc.Source),
		nullString(&doc.SourceURL),
		nullBytes(doc.Inline),
		doc.Status,
		doc.UploadedAt,
	)
	if err != nil {
		return errx.Wrap(err, "failed to insert source document", errx.TypeInternal).
			WithDetail("document_id", doc.ID).
			WithDetail("candidate_id", doc.CandidateID)
	}
	return nil
}

func (r *PostgresDocumentRepository) MarkProcessed(ctx context.Context, id kernel.DocumentID, at time.Time) error {
	query := `UPDATE resume_documents SET status = $1, processed_at = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, resume.DocumentStatusProcessed, at, id)
	if err != nil {
		return errx.Wrap(err, "failed to mark document processed", errx.TypeInternal).
			WithDetail("document_id", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return resume.ErrSourceDocumentNotFound().WithDetail("document_id", id)
	}
	return nil
}
