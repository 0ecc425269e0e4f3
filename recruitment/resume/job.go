package resume

import (
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
)

const DefaultMaxAttempts = 5

// ProcessingJob is one queued candidate run.
type ProcessingJob struct {
	ID          kernel.QueueJobID  `json:"id"`
	CandidateID kernel.CandidateID `json:"candidate_id"`
	JobID       kernel.JobID       `json:"job_id,omitempty"`

	AttemptCount int `json:"attempt_count"`
	MaxAttempts  int `json:"max_attempts"`

	LastError   string     `json:"last_error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
}

func (j *ProcessingJob) CanRetry() bool {
	return j.AttemptCount < j.MaxAttempts
}

// RetryDelay grows exponentially with the attempt count: 2^attempt seconds
// times base.
func (j *ProcessingJob) RetryDelay(base time.Duration) time.Duration {
	attempt := j.AttemptCount
	if attempt > 10 {
		attempt = 10
	}
	return base * time.Duration(1<<attempt)
}
