package job

import (
	"context"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
)

type Repository interface {
	// GetByID retrieves a vacancy by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)
}
