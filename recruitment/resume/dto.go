package resume

import (
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
)

// Outcome tells how a candidate's run ended.
type Outcome string

const (
	OutcomeProcessed        Outcome = "PROCESSED"
	OutcomeAlreadyProcessed Outcome = "SKIPPED_ALREADY_PROCESSED"
	OutcomeNoSourceDocument Outcome = "SKIPPED_NO_SOURCE_DOCUMENT"
	OutcomeFailed           Outcome = "FAILED"
)

const (
	MessageProcessed        = "Processing completed"
	MessageAlreadyProcessed = "Candidate previously processed; skipped"
	MessageNoSourceDocument = "Candidate has no source document"
)

// ProcessingSummary reports the result of one candidate's registration run.
type ProcessingSummary struct {
	CandidateID      kernel.CandidateID `json:"candidateId"`
	SourceDocumentID *kernel.DocumentID `json:"sourceDocumentId,omitempty"`
	EducationsAdded  int                `json:"educationsAdded"`
	ExperiencesAdded int                `json:"experiencesAdded"`
	SkillsAdded      int                `json:"skillsAdded"`
	Outcome          Outcome            `json:"outcome"`
	Message          string             `json:"message"`
	Retryable        bool               `json:"retryable,omitempty"`
}

func (s ProcessingSummary) TotalAdded() int {
	return s.EducationsAdded + s.ExperiencesAdded + s.SkillsAdded
}

// VacancyProcessingResponse is the result of processing every candidate in
// resume review for a vacancy.
type VacancyProcessingResponse struct {
	JobID     kernel.JobID        `json:"jobId"`
	Summaries []ProcessingSummary `json:"summaries"`
	Processed int                 `json:"processed"`
	Skipped   int                 `json:"skipped"`
	Failed    int                 `json:"failed"`
}

// LinkDocumentRequest registers a new source document for a candidate.
type LinkDocumentRequest struct {
	SourceURL string `json:"source_url"`
	Source    string `json:"source"`
	FileType  string `json:"file_type"`
	SizeBytes int64  `json:"size_bytes"`
}

// EnqueueResponse lists the jobs queued for asynchronous processing.
type EnqueueResponse struct {
	JobID   kernel.JobID        `json:"jobId"`
	Jobs    []kernel.QueueJobID `json:"jobs"`
	Message string              `json:"message"`
}

type CandidatesInReviewResponse struct {
	JobID      kernel.JobID         `json:"jobId"`
	Candidates []kernel.CandidateID `json:"candidates"`
}
