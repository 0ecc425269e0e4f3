package resumeinfra

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

// documentRow represents a row from the resume_documents table
type documentRow struct {
	ID            string         `db:"id"`
	CandidateID   string         `db:"candidate_id"`
	FileName      string         `db:"file_name"`
	FilePath      string         `db:"file_path"`
	FileType      string         `db:"file_type"`
	SizeBytes     int64          `db:"size_bytes"`
	Source        sql.NullString `db:"source"`
	SourceURL     sql.NullString `db:"source_url"`
	InlineContent []byte         `db:"inline_content"`
	Status        string         `db:"status"`
	UploadedAt    time.Time      `db:"uploaded_at"`
	ProcessedAt   sql.NullTime   `db:"processed_at"`
}

func (r *documentRow) ToDomain() *resume.SourceDocument {
	doc := &resume.SourceDocument{
		ID:          kernel.NewDocumentID(r.ID),
		CandidateID: kernel.NewCandidateID(r.CandidateID),
		FileName:    r.FileName,
		FilePath:    r.FilePath,
		FileType:    r.FileType,
		SizeBytes:   r.SizeBytes,
		Source:      r.Source.String,
		SourceURL:   r.SourceURL.String,
		Status:      resume.DocumentStatus(r.Status),
		UploadedAt:  r.UploadedAt,
	}
	if len(r.InlineContent) > 0 {
		doc.Inline = json.RawMessage(r.InlineContent)
	}
	if r.ProcessedAt.Valid {
		t := r.ProcessedAt.Time
		doc.ProcessedAt = &t
	}
	return doc
}

// nullString maps an absent or blank value to NULL.
func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullBytes(b json.RawMessage) any {
	if len(b) == 0 {
		return nil
	}
	return []byte(b)
}
