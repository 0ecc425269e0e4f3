package application

import (
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
)

// ApplicationStatus represents the status of an application
type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "SUBMITTED"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatus = "APPROVED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn   ApplicationStatus = "WITHDRAWN"
	ApplicationStatusArchived    ApplicationStatus = "ARCHIVED"
)

// ApplicationStage is the step of the hiring process an application sits in.
type ApplicationStage string

const (
	ApplicationStageResumeReview ApplicationStage = "RESUME_REVIEW"
	ApplicationStageInterview    ApplicationStage = "INTERVIEW"
	ApplicationStageOffer        ApplicationStage = "OFFER"
)

type Application struct {
	ID          kernel.ApplicationID `db:"id" json:"id"`
	JobID       kernel.JobID         `db:"job_id" json:"job_id"`
	CandidateID kernel.CandidateID   `db:"candidate_id" json:"candidate_id"`
	Stage       ApplicationStage     `db:"stage" json:"stage"`
	Status      ApplicationStatus    `db:"status" json:"status"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updated_at"`
}

// IsActive checks if the application is still in play
func (a *Application) IsActive() bool {
	return a.Status != ApplicationStatusArchived &&
		a.Status != ApplicationStatusRejected &&
		a.Status != ApplicationStatusWithdrawn
}

// AwaitsResumeReview reports whether the candidate's resume is due for
// processing.
func (a *Application) AwaitsResumeReview() bool {
	return a.IsActive() && a.Stage == ApplicationStageResumeReview
}
