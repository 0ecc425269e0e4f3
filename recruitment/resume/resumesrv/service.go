package resumesrv

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/Abraxas-365/cvrelay/internal/textnorm"
	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/fsx"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/application"
	"github.com/Abraxas-365/cvrelay/recruitment/candidate"
	"github.com/Abraxas-365/cvrelay/recruitment/job"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config holds the tunables of the processing service.
type Config struct {
	// BatchParallelism bounds how many candidates of a vacancy run at once.
	BatchParallelism int
	// DocumentPrefix is prepended to generated document file names.
	DocumentPrefix string
	MaxAttempts    int
	RetryBase      time.Duration
}

func DefaultConfig() Config {
	return Config{
		BatchParallelism: 4,
		DocumentPrefix:   "cv",
		MaxAttempts:      resume.DefaultMaxAttempts,
		RetryBase:        time.Second,
	}
}

type Service struct {
	documents    resume.DocumentRepository
	candidates   candidate.Repository
	jobs         job.Repository
	applications application.Repository
	extractor    *Extractor
	assembler    *Assembler
	registrar    *Registrar
	queue        resume.JobQueue
	files        fsx.FileSystem
	clock        kernel.Clock
	cfg          Config
}

// NewService creates a new resume processing service
func NewService(
	documents resume.DocumentRepository,
	candidates candidate.Repository,
	jobs job.Repository,
	applications application.Repository,
	extractor *Extractor,
	assembler *Assembler,
	registrar *Registrar,
	queue resume.JobQueue,
	files fsx.FileSystem,
	clock kernel.Clock,
	cfg Config,
) *Service {
	if clock == nil {
		clock = kernel.SystemClock()
	}
	if cfg.BatchParallelism <= 0 {
		cfg.BatchParallelism = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = resume.DefaultMaxAttempts
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = time.Second
	}
	return &Service{
		documents:    documents,
		candidates:   candidates,
		jobs:         jobs,
		applications: applications,
		extractor:    extractor,
		assembler:    assembler,
		registrar:    registrar,
		queue:        queue,
		files:        files,
		clock:        clock,
		cfg:          cfg,
	}
}

// ============================================================================
// Candidate processing
// ============================================================================

// ProcessCandidate extracts the candidate's latest source document and
// registers what is new.
func (s *Service) ProcessCandidate(ctx context.Context, candidateID kernel.CandidateID) (*resume.ProcessingSummary, error) {
	if _, err := s.candidates.GetByID(ctx, candidateID); err != nil {
		return nil, err
	}

	summary, err := s.process(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *Service) process(ctx context.Context, candidateID kernel.CandidateID) (resume.ProcessingSummary, error) {
	done, err := s.registrar.AlreadyProcessed(ctx, candidateID)
	if err != nil {
		return resume.ProcessingSummary{CandidateID: candidateID}, err
	}
	if done {
		logx.Infof("Skipping candidate %s: already has registered records", candidateID)
		return resume.ProcessingSummary{
			CandidateID: candidateID,
			Outcome:     resume.OutcomeAlreadyProcessed,
			Message:     resume.MessageAlreadyProcessed,
		}, nil
	}

	doc, err := s.documents.GetLatestByCandidate(ctx, candidateID)
	if err != nil {
		if errx.IsCode(err, resume.CodeSourceDocumentNotFound) {
			logx.Warnf("Candidate %s has no source document; not processed", candidateID)
			return resume.ProcessingSummary{
				CandidateID: candidateID,
				Outcome:     resume.OutcomeNoSourceDocument,
				Message:     resume.MessageNoSourceDocument,
			}, nil
		}
		return resume.ProcessingSummary{CandidateID: candidateID}, err
	}

	logx.Infof("Extracting document %s for candidate %s", doc.ID, candidateID)
	raw := s.extractor.Extract(ctx, doc)

	profile, err := s.assembler.Assemble(ctx, raw)
	if err != nil {
		return resume.ProcessingSummary{CandidateID: candidateID}, err
	}

	docID := doc.ID
	summary, err := s.registrar.Register(ctx, candidateID, &docID, profile)
	if err != nil {
		return summary, err
	}

	if summary.Outcome == resume.OutcomeProcessed {
		if err := s.documents.MarkProcessed(ctx, doc.ID, s.clock.Now()); err != nil {
			logx.Warnf("Failed to mark document %s processed: %v", doc.ID, err)
		}
	}
	return summary, nil
}

// failedSummary reports a run that ended in err.
func failedSummary(candidateID kernel.CandidateID, err error) resume.ProcessingSummary {
	msg := err.Error()
	var xerr *errx.Error
	if errors.As(err, &xerr) {
		msg = xerr.Message
	}
	return resume.ProcessingSummary{
		CandidateID: candidateID,
		Outcome:     resume.OutcomeFailed,
		Message:     msg,
		Retryable:   errx.IsRetryable(err),
	}
}

// ============================================================================
// Vacancy batch
// ============================================================================

func (s *Service) reviewCandidates(ctx context.Context, jobID kernel.JobID) ([]kernel.CandidateID, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	apps, err := s.applications.ListAwaitingResumeReview(ctx, jobID)
	if err != nil {
		return nil, err
	}

	seen := make(map[kernel.CandidateID]bool, len(apps))
	ids := make([]kernel.CandidateID, 0, len(apps))
	for _, app := range apps {
		if !app.AwaitsResumeReview() || seen[app.CandidateID] {
			continue
		}
		seen[app.CandidateID] = true
		ids = append(ids, app.CandidateID)
	}
	return ids, nil
}

// ListCandidatesInReview returns the candidates of a vacancy whose resume is
// awaiting review.
func (s *Service) ListCandidatesInReview(ctx context.Context, jobID kernel.JobID) (*resume.CandidatesInReviewResponse, error) {
	ids, err := s.reviewCandidates(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &resume.CandidatesInReviewResponse{JobID: jobID, Candidates: ids}, nil
}

// ProcessVacancy processes every candidate in resume review for the vacancy.
// Candidates run independently; a failing candidate is reported in its own
// summary and does not stop the others.
func (s *Service) ProcessVacancy(ctx context.Context, jobID kernel.JobID) (*resume.VacancyProcessingResponse, error) {
	ids, err := s.reviewCandidates(ctx, jobID)
	if err != nil {
		return nil, err
	}

	logx.Infof("Processing resumes for vacancy %s: candidates=%d", jobID, len(ids))

	summaries := make([]resume.ProcessingSummary, len(ids))

	var g errgroup.Group
	g.SetLimit(s.cfg.BatchParallelism)
	for i, id := range ids {
		g.Go(func() error {
			summary, err := s.process(ctx, id)
			if err != nil {
				logx.Errorf("Candidate %s failed: %v", id, err)
				summary = failedSummary(id, err)
			}
			summaries[i] = summary
			return nil
		})
	}
	_ = g.Wait()

	resp := &resume.VacancyProcessingResponse{JobID: jobID, Summaries: summaries}
	for _, sm := range summaries {
		switch sm.Outcome {
		case resume.OutcomeProcessed:
			resp.Processed++
		case resume.OutcomeFailed:
			resp.Failed++
		default:
			resp.Skipped++
		}
	}

	logx.Infof("Vacancy %s done: processed=%d, skipped=%d, failed=%d", jobID, resp.Processed, resp.Skipped, resp.Failed)
	return resp, nil
}

// ============================================================================
// Documents
// ============================================================================

// LinkDocument records a new source document for the candidate. Earlier
// documents are left untouched; the newest one is processed next.
func (s *Service) LinkDocument(ctx context.Context, candidateID kernel.CandidateID, req resume.LinkDocumentRequest) (*resume.SourceDocument, error) {
	doc, err := s.newDocument(ctx, candidateID, req)
	if err != nil {
		return nil, err
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, resume.ErrDocumentSaveFailed().
			WithDetail("candidate_id", candidateID).
			WithCause(err)
	}

	logx.Infof("Document %s linked to candidate %s: %s", doc.ID, candidateID, doc.FilePath)
	return doc, nil
}

// UploadDocument stores the uploaded bytes at the new document's path and
// records the document. The stored file is removed again when the record
// cannot be saved.
func (s *Service) UploadDocument(ctx context.Context, candidateID kernel.CandidateID, fileName string, data []byte) (*resume.SourceDocument, error) {
	if len(data) == 0 {
		return nil, resume.ErrEmptyUpload().WithDetail("file_name", fileName)
	}
	if !s.extractor.Supports(fileName) {
		return nil, resume.ErrUnsupportedFormat().
			WithDetail("file_name", fileName).
			WithDetail("supported_formats", s.extractor.SupportedExtensions())
	}
	if s.files == nil {
		return nil, resume.ErrDocumentSaveFailed().WithDetail("reason", "no document storage configured")
	}

	doc, err := s.newDocument(ctx, candidateID, resume.LinkDocumentRequest{
		Source:    resume.DocumentSourceUpload,
		FileType:  path.Ext(fileName),
		SizeBytes: int64(len(data)),
	})
	if err != nil {
		return nil, err
	}

	if err := s.files.WriteFile(ctx, doc.FilePath, data); err != nil {
		return nil, resume.ErrDocumentSaveFailed().
			WithDetail("candidate_id", candidateID).
			WithCause(err)
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		if delErr := s.files.DeleteFile(ctx, doc.FilePath); delErr != nil {
			logx.Warnf("Failed to remove orphaned upload %s: %v", doc.FilePath, delErr)
		}
		return nil, resume.ErrDocumentSaveFailed().
			WithDetail("candidate_id", candidateID).
			WithCause(err)
	}

	logx.Infof("Document %s uploaded for candidate %s: %s (%d bytes)", doc.ID, candidateID, doc.FilePath, doc.SizeBytes)
	return doc, nil
}

func (s *Service) newDocument(ctx context.Context, candidateID kernel.CandidateID, req resume.LinkDocumentRequest) (*resume.SourceDocument, error) {
	c, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if c.IsArchived() {
		return nil, candidate.ErrCandidateArchived().WithDetail("candidate_id", candidateID)
	}

	fileType := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(req.FileType), "."))
	if fileType == "" {
		fileType = "pdf"
	}
	name := DocumentFileName(c.GetFullName(), candidateID, fileType)

	return &resume.SourceDocument{
		ID:          kernel.NewDocumentID(uuid.NewString()),
		CandidateID: candidateID,
		FileName:    name,
		FilePath:    s.documentPath(name),
		FileType:    fileType,
		SizeBytes:   req.SizeBytes,
		Source:      strings.TrimSpace(req.Source),
		SourceURL:   strings.TrimSpace(req.SourceURL),
		Status:      resume.DocumentStatusPending,
		UploadedAt:  s.clock.Now(),
	}, nil
}

func (s *Service) documentPath(name string) string {
	if s.files != nil {
		return s.files.Join(s.cfg.DocumentPrefix, name)
	}
	return path.Join(s.cfg.DocumentPrefix, name)
}

// DocumentFileName builds "CV_<Name_Parts>.<ext>" from the candidate's name
// with diacritics removed. An empty name falls back to the candidate ID.
func DocumentFileName(fullName string, candidateID kernel.CandidateID, ext string) string {
	parts := strings.FieldsFunc(textnorm.StripMarks(fullName), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	base := strings.Join(parts, "_")
	if base == "" {
		base = candidateID.String()
	}
	return "CV_" + base + "." + ext
}

// Preview runs extraction and normalization on an uploaded file without
// persisting anything.
func (s *Service) Preview(ctx context.Context, fileName string, data []byte) (*resume.NormalizedProfile, error) {
	if len(data) == 0 {
		return nil, resume.ErrEmptyUpload().WithDetail("file_name", fileName)
	}

	raw, err := s.extractor.Dispatch(ctx, strings.ToLower(fileName), data)
	if err != nil {
		return nil, err
	}

	profile, err := s.assembler.Assemble(ctx, raw)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
