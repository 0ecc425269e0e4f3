package candidate

import (
	"strings"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
)

// CandidateStatus represents the status of a candidate
type CandidateStatus string

const (
	CandidateStatusActive   CandidateStatus = "ACTIVE"
	CandidateStatusInactive CandidateStatus = "INACTIVE"
	CandidateStatusArchived CandidateStatus = "ARCHIVED"
)

type Candidate struct {
	ID        kernel.CandidateID `db:"id" json:"id"`
	Email     string             `db:"email" json:"email"`
	FirstName string             `db:"first_name" json:"first_name"`
	LastName  string             `db:"last_name" json:"last_name"`
	Status    CandidateStatus    `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// GetFullName returns the candidate's full name
func (c *Candidate) GetFullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Candidate) IsArchived() bool {
	return c.Status == CandidateStatusArchived
}
