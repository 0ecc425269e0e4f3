package resumeapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/cvrelay/internal/export"
	"github.com/Abraxas-365/cvrelay/pkg/iam/auth"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/gofiber/fiber/v2"
)

const (
	maxUploadSize = 10 * 1024 * 1024 // 10MB
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Service is the part of resumesrv.Service the handlers call.
type Service interface {
	ListCandidatesInReview(ctx context.Context, jobID kernel.JobID) (*resume.CandidatesInReviewResponse, error)
	ProcessVacancy(ctx context.Context, jobID kernel.JobID) (*resume.VacancyProcessingResponse, error)
	ProcessVacancyAsync(ctx context.Context, jobID kernel.JobID) (*resume.EnqueueResponse, error)
	ProcessCandidate(ctx context.Context, candidateID kernel.CandidateID) (*resume.ProcessingSummary, error)
	LinkDocument(ctx context.Context, candidateID kernel.CandidateID, req resume.LinkDocumentRequest) (*resume.SourceDocument, error)
	UploadDocument(ctx context.Context, candidateID kernel.CandidateID, fileName string, data []byte) (*resume.SourceDocument, error)
	Preview(ctx context.Context, fileName string, data []byte) (*resume.NormalizedProfile, error)
}

type ResumeHandlers struct {
	service Service
	clock   kernel.Clock
}

func NewResumeHandlers(service Service, clock kernel.Clock) *ResumeHandlers {
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return &ResumeHandlers{
		service: service,
		clock:   clock,
	}
}

func (h *ResumeHandlers) RegisterRoutes(app *fiber.App, tokens auth.TokenService) {
	api := app.Group("/api", auth.TokenMiddleware(tokens))

	// Vacancy batch
	vacancies := api.Group("/vacancies/:id")
	vacancies.Get("/candidates/in-review", auth.RequireScope(auth.ScopeApplicationsReview), h.ListCandidatesInReview)
	vacancies.Post("/resume-processing", auth.RequireScope(auth.ScopeResumesProcess), h.ProcessVacancy)
	vacancies.Post("/resume-processing/async", auth.RequireScope(auth.ScopeResumesProcess), h.ProcessVacancyAsync)
	vacancies.Post("/resume-processing/report", auth.RequireScope(auth.ScopeResumesReport), h.ProcessVacancyReport)

	// Single candidate
	candidates := api.Group("/candidates/:id")
	candidates.Post("/resume-processing", auth.RequireScope(auth.ScopeResumesProcess), h.ProcessCandidate)
	candidates.Post("/documents", auth.RequireScope(auth.ScopeCandidatesWrite), h.LinkDocument)

	api.Post("/resumes/preview", auth.RequireScope(auth.ScopeResumesPreview), h.Preview)
}

// ============================================================================
// Vacancy Handlers
// ============================================================================

// ListCandidatesInReview lists candidates whose application is in resume review
// GET /api/vacancies/:id/candidates/in-review
func (h *ResumeHandlers) ListCandidatesInReview(c *fiber.Ctx) error {
	jobID, err := jobParam(c)
	if err != nil {
		return err
	}

	response, err := h.service.ListCandidatesInReview(c.Context(), jobID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// ProcessVacancy registers every in-review candidate's resume synchronously
// POST /api/vacancies/:id/resume-processing
func (h *ResumeHandlers) ProcessVacancy(c *fiber.Ctx) error {
	jobID, err := jobParam(c)
	if err != nil {
		return err
	}

	response, err := h.service.ProcessVacancy(c.Context(), jobID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// ProcessVacancyAsync queues one job per in-review candidate
// POST /api/vacancies/:id/resume-processing/async
func (h *ResumeHandlers) ProcessVacancyAsync(c *fiber.Ctx) error {
	jobID, err := jobParam(c)
	if err != nil {
		return err
	}

	response, err := h.service.ProcessVacancyAsync(c.Context(), jobID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(response)
}

// ProcessVacancyReport runs the vacancy batch and returns it as a workbook
// POST /api/vacancies/:id/resume-processing/report
func (h *ResumeHandlers) ProcessVacancyReport(c *fiber.Ctx) error {
	jobID, err := jobParam(c)
	if err != nil {
		return err
	}

	response, err := h.service.ProcessVacancy(c.Context(), jobID)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.WriteSummaries(&buf, response, h.clock.Now()); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="resume-processing-%s.xlsx"`, jobID))
	return c.Send(buf.Bytes())
}

// ============================================================================
// Candidate Handlers
// ============================================================================

// ProcessCandidate registers one candidate's latest resume
// POST /api/candidates/:id/resume-processing
func (h *ResumeHandlers) ProcessCandidate(c *fiber.Ctx) error {
	candidateID, err := candidateParam(c)
	if err != nil {
		return err
	}

	response, err := h.service.ProcessCandidate(c.Context(), candidateID)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// LinkDocument records a new source document for a candidate. A multipart
// body with a "file" part uploads the bytes; a JSON body only links.
// POST /api/candidates/:id/documents
func (h *ResumeHandlers) LinkDocument(c *fiber.Ctx) error {
	candidateID, err := candidateParam(c)
	if err != nil {
		return err
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return h.uploadDocument(c, candidateID)
	}

	var req resume.LinkDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return resume.ErrInvalidRequest().WithDetail("reason", "invalid request body")
	}
	if req.SizeBytes < 0 {
		return resume.ErrInvalidRequest().WithDetail("size_bytes", req.SizeBytes)
	}

	if authCtx, ok := auth.GetAuthContext(c); ok {
		logx.Infof("User %s linking document for candidate %s", authCtx.UserID, candidateID)
	}

	doc, err := h.service.LinkDocument(c.Context(), candidateID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *ResumeHandlers) uploadDocument(c *fiber.Ctx, candidateID kernel.CandidateID) error {
	name, data, err := readUpload(c)
	if err != nil {
		return err
	}

	if authCtx, ok := auth.GetAuthContext(c); ok {
		logx.Infof("User %s uploading %s for candidate %s", authCtx.UserID, name, candidateID)
	}

	doc, err := h.service.UploadDocument(c.Context(), candidateID, name, data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// ============================================================================
// Preview
// ============================================================================

// Preview parses an uploaded resume without persisting anything
// POST /api/resumes/preview
func (h *ResumeHandlers) Preview(c *fiber.Ctx) error {
	name, data, err := readUpload(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Preview(c.Context(), name, data)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// readUpload reads the "file" part of a multipart request, capped at
// maxUploadSize.
func readUpload(c *fiber.Ctx) (string, []byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", nil, resume.ErrInvalidRequest().WithDetail("reason", "file is required")
	}

	if file.Size > maxUploadSize {
		return "", nil, resume.ErrInvalidRequest().WithDetails(map[string]any{
			"reason":   "file too large",
			"max_size": "10MB",
			"size":     file.Size,
		})
	}

	uploaded, err := file.Open()
	if err != nil {
		return "", nil, resume.ErrInvalidRequest().WithDetail("reason", "failed to open uploaded file").WithCause(err)
	}
	defer uploaded.Close()

	data, err := io.ReadAll(io.LimitReader(uploaded, maxUploadSize+1))
	if err != nil {
		return "", nil, resume.ErrInvalidRequest().WithDetail("reason", "failed to read uploaded file").WithCause(err)
	}
	return filepath.Base(file.Filename), data, nil
}

func jobParam(c *fiber.Ctx) (kernel.JobID, error) {
	id := kernel.NewJobID(strings.TrimSpace(c.Params("id")))
	if id.IsEmpty() {
		return "", resume.ErrInvalidRequest().WithDetail("reason", "invalid vacancy ID")
	}
	return id, nil
}

func candidateParam(c *fiber.Ctx) (kernel.CandidateID, error) {
	id := kernel.NewCandidateID(strings.TrimSpace(c.Params("id")))
	if id.IsEmpty() {
		return "", resume.ErrInvalidRequest().WithDetail("reason", "invalid candidate ID")
	}
	return id, nil
}
