package job

import (
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
)

// JobStatus represents the status of a vacancy
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"
	JobStatusPublished JobStatus = "PUBLISHED"
	JobStatusClosed    JobStatus = "CLOSED"
	JobStatusArchived  JobStatus = "ARCHIVED"
)

// Job is a vacancy candidates apply to.
type Job struct {
	ID        kernel.JobID `db:"id" json:"id"`
	Title     string       `db:"job_title" json:"job_title"`
	Status    JobStatus    `db:"status" json:"status"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

func (j *Job) IsArchived() bool {
	return j.Status == JobStatusArchived
}
