package resume

import (
	"context"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/skill"
)

// ============================================================================
// Extraction
// ============================================================================

// DocumentRef is what the locator is asked to resolve.
type DocumentRef struct {
	Path     string
	FileName string
}

// LocatedDocument is a resolved, fully read document.
type LocatedDocument struct {
	Data     []byte
	Name     string // lower-cased, drives format dispatch
	Location string // the candidate path that resolved
	// Placeholder is set when no candidate resolved and the fixed
	// placeholder resource was returned instead.
	Placeholder bool
}

type DocumentLocator interface {
	// Locate returns ErrDocumentNotFound when nothing, placeholder included,
	// can be read.
	Locate(ctx context.Context, ref DocumentRef) (*LocatedDocument, error)
}

// TextRenderer turns a binary document into Unicode text.
type TextRenderer interface {
	RenderText(ctx context.Context, data []byte) (string, error)
}

// ============================================================================
// Persistence
// ============================================================================

type DocumentRepository interface {
	// GetLatestByCandidate returns the most recently linked document, or
	// ErrSourceDocumentNotFound.
	GetLatestByCandidate(ctx context.Context, candidateID kernel.CandidateID) (*SourceDocument, error)

	Create(ctx context.Context, doc *SourceDocument) error

	MarkProcessed(ctx context.Context, id kernel.DocumentID, at time.Time) error
}

// ProfileRepository runs fn with a ProfileStore bound to one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type ProfileRepository interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store ProfileStore) error) error
}

// ProfileStore reads and writes a candidate's profile records. Save methods
// return ErrDuplicateRecord when a uniqueness constraint rejects the row.
type ProfileStore interface {
	HasAnyRecord(ctx context.Context, candidateID kernel.CandidateID) (bool, error)

	EducationExists(ctx context.Context, candidateID kernel.CandidateID, key EducationKey) (bool, error)
	SaveEducation(ctx context.Context, candidateID kernel.CandidateID, rec EducationRecord, createdAt time.Time) error

	ExperienceExists(ctx context.Context, candidateID kernel.CandidateID, key ExperienceKey) (bool, error)
	SaveExperience(ctx context.Context, candidateID kernel.CandidateID, rec ExperienceRecord, createdAt time.Time) error

	SkillLinkExists(ctx context.Context, candidateID kernel.CandidateID, skillID kernel.SkillID) (bool, error)
	SaveSkillLink(ctx context.Context, candidateID kernel.CandidateID, tag skill.Tag, registeredAt time.Time) error
}

// CandidateLocker serializes runs for the same candidate.
type CandidateLocker interface {
	// Lock blocks until the candidate is free or ctx ends. The returned
	// release func must be called exactly once.
	Lock(ctx context.Context, candidateID kernel.CandidateID) (release func(), err error)
}

// ============================================================================
// Queue
// ============================================================================

type JobQueue interface {
	Enqueue(ctx context.Context, jobID kernel.QueueJobID, payload any) error

	// Dequeue blocks up to timeout; it returns nil data when nothing arrived.
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	EnqueueDelayed(ctx context.Context, jobID kernel.QueueJobID, payload any, delay time.Duration) error

	MoveDelayedToReady(ctx context.Context) (int, error)
}
