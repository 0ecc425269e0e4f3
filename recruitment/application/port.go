package application

import (
	"context"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
)

type Repository interface {
	// ListAwaitingResumeReview returns the active applications for a vacancy
	// that sit in the resume review stage, oldest first.
	ListAwaitingResumeReview(ctx context.Context, jobID kernel.JobID) ([]*Application, error)
}
