package candidate

import (
	"context"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
)

type Repository interface {
	// GetByID retrieves a candidate by ID
	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)
}
