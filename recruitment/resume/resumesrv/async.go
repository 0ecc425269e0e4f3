package resumesrv

import (
	"context"
	"fmt"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/google/uuid"
)

// ProcessVacancyAsync queues one job per candidate in resume review.
func (s *Service) ProcessVacancyAsync(ctx context.Context, jobID kernel.JobID) (*resume.EnqueueResponse, error) {
	ids, err := s.reviewCandidates(ctx, jobID)
	if err != nil {
		return nil, err
	}

	queued := make([]kernel.QueueJobID, 0, len(ids))
	for _, id := range ids {
		qj, err := s.enqueue(ctx, id, jobID)
		if err != nil {
			return nil, err
		}
		queued = append(queued, qj.ID)
	}

	logx.Infof("Queued %d candidates of vacancy %s for processing", len(queued), jobID)

	return &resume.EnqueueResponse{
		JobID:   jobID,
		Jobs:    queued,
		Message: fmt.Sprintf("%d candidates queued for processing", len(queued)),
	}, nil
}

func (s *Service) enqueue(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*resume.ProcessingJob, error) {
	qj := &resume.ProcessingJob{
		ID:          kernel.NewQueueJobID(uuid.NewString()),
		CandidateID: candidateID,
		JobID:       jobID,
		MaxAttempts: s.cfg.MaxAttempts,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.queue.Enqueue(ctx, qj.ID, qj); err != nil {
		return nil, resume.ErrQueueEnqueueFailed().
			WithDetail("job_id", qj.ID).
			WithDetail("candidate_id", candidateID).
			WithCause(err)
	}
	return qj, nil
}

// HandleJob is the worker entry point for one queued candidate.
func (s *Service) HandleJob(ctx context.Context, qj *resume.ProcessingJob) error {
	logx.Infof("Processing job: JobID=%s, CandidateID=%s, Attempt=%d/%d",
		qj.ID, qj.CandidateID, qj.AttemptCount+1, qj.MaxAttempts)

	summary, err := s.process(ctx, qj.CandidateID)
	if err != nil {
		return s.handleJobError(ctx, qj, err)
	}

	logx.Infof("Job completed: JobID=%s, Outcome=%s, Added=%d", qj.ID, summary.Outcome, summary.TotalAdded())
	return nil
}

// handleJobError re-enqueues a failed job with exponential backoff while
// attempts remain and the failure is transient.
func (s *Service) handleJobError(ctx context.Context, qj *resume.ProcessingJob, cause error) error {
	qj.AttemptCount++
	qj.LastError = cause.Error()

	if !transient(cause) {
		logx.Errorf("Job failed permanently: JobID=%s, Error=%v", qj.ID, cause)
		return cause
	}

	if !qj.CanRetry() {
		logx.Errorf("Job permanently failed: JobID=%s, Attempts=%d/%d, Error=%v",
			qj.ID, qj.AttemptCount, qj.MaxAttempts, cause)
		return resume.ErrJobMaxRetries().
			WithDetail("job_id", qj.ID).
			WithDetail("final_attempt", qj.AttemptCount).
			WithCause(cause)
	}

	delay := qj.RetryDelay(s.cfg.RetryBase)
	next := s.clock.Now().Add(delay)
	qj.NextRetryAt = &next

	logx.Warnf("Job failed, will retry: JobID=%s, Attempt=%d/%d, NextRetry=%v, Error=%v",
		qj.ID, qj.AttemptCount, qj.MaxAttempts, next, cause)

	if err := s.queue.EnqueueDelayed(ctx, qj.ID, qj, delay); err != nil {
		return resume.ErrJobRetryFailed().
			WithDetail("job_id", qj.ID).
			WithCause(err)
	}
	return cause
}

// transient reports whether a later attempt could succeed.
func transient(err error) bool {
	if errx.IsRetryable(err) {
		return true
	}
	return !errx.IsType(err, errx.TypeNotFound) &&
		!errx.IsType(err, errx.TypeValidation) &&
		!errx.IsType(err, errx.TypeBusiness)
}
