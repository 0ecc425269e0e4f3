package resumeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/errx/errxhttp"
	"github.com/Abraxas-365/cvrelay/pkg/iam/auth"
	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/Abraxas-365/cvrelay/recruitment/job"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

type fakeService struct {
	previewName string
	previewData []byte
	linked      resume.LinkDocumentRequest
	uploadName  string
	uploadData  []byte
}

func (f *fakeService) ListCandidatesInReview(ctx context.Context, jobID kernel.JobID) (*resume.CandidatesInReviewResponse, error) {
	if jobID != "job-1" {
		return nil, job.ErrJobNotFound()
	}
	return &resume.CandidatesInReviewResponse{JobID: jobID, Candidates: []kernel.CandidateID{"c-1", "c-2"}}, nil
}

func (f *fakeService) ProcessVacancy(ctx context.Context, jobID kernel.JobID) (*resume.VacancyProcessingResponse, error) {
	if jobID != "job-1" {
		return nil, job.ErrJobNotFound()
	}
	return &resume.VacancyProcessingResponse{
		JobID: jobID,
		Summaries: []resume.ProcessingSummary{
			{CandidateID: "c-1", Outcome: resume.OutcomeProcessed, Message: resume.MessageProcessed, SkillsAdded: 2},
			{CandidateID: "c-2", Outcome: resume.OutcomeAlreadyProcessed, Message: resume.MessageAlreadyProcessed},
		},
		Processed: 1,
		Skipped:   1,
	}, nil
}

func (f *fakeService) ProcessVacancyAsync(ctx context.Context, jobID kernel.JobID) (*resume.EnqueueResponse, error) {
	return &resume.EnqueueResponse{JobID: jobID, Jobs: []kernel.QueueJobID{"q-1"}, Message: "queued"}, nil
}

func (f *fakeService) ProcessCandidate(ctx context.Context, candidateID kernel.CandidateID) (*resume.ProcessingSummary, error) {
	return &resume.ProcessingSummary{
		CandidateID: candidateID,
		Outcome:     resume.OutcomeNoSourceDocument,
		Message:     resume.MessageNoSourceDocument,
	}, nil
}

func (f *fakeService) LinkDocument(ctx context.Context, candidateID kernel.CandidateID, req resume.LinkDocumentRequest) (*resume.SourceDocument, error) {
	f.linked = req
	return &resume.SourceDocument{
		ID:          "doc-1",
		CandidateID: candidateID,
		FileName:    "CV_Ana_Diaz.pdf",
		Status:      resume.DocumentStatusPending,
	}, nil
}

func (f *fakeService) UploadDocument(ctx context.Context, candidateID kernel.CandidateID, fileName string, data []byte) (*resume.SourceDocument, error) {
	f.uploadName = fileName
	f.uploadData = data
	if len(data) == 0 {
		return nil, resume.ErrEmptyUpload()
	}
	return &resume.SourceDocument{
		ID:          "doc-2",
		CandidateID: candidateID,
		FileName:    "CV_Ana_Diaz.txt",
		FilePath:    "cv/CV_Ana_Diaz.txt",
		SizeBytes:   int64(len(data)),
		Source:      resume.DocumentSourceUpload,
		Status:      resume.DocumentStatusPending,
	}, nil
}

func (f *fakeService) Preview(ctx context.Context, fileName string, data []byte) (*resume.NormalizedProfile, error) {
	f.previewName = fileName
	f.previewData = data
	if len(data) == 0 {
		return nil, resume.ErrEmptyUpload()
	}
	p := resume.NewNormalizedProfile(nil, []resume.ExperienceRecord{{Employer: "Acme", Role: "Analista"}}, nil)
	return &p, nil
}

func setup(t *testing.T, scopes ...string) (*fiber.App, *fakeService, string) {
	t.Helper()
	clock := kernel.ClockFunc(func() time.Time { return now })
	tokens := auth.NewJWTService("secret", "cvrelay", time.Hour, clock)
	if len(scopes) == 0 {
		scopes = []string{auth.ScopeAll}
	}
	token, err := tokens.GenerateAccessToken("user-1", "", scopes)
	require.NoError(t, err)

	svc := &fakeService{}
	app := fiber.New(fiber.Config{ErrorHandler: errxhttp.ErrorHandler})
	NewResumeHandlers(svc, clock).RegisterRoutes(app, tokens)
	return app, svc, "Bearer " + token
}

func do(t *testing.T, app *fiber.App, req *http.Request, bearer string) *http.Response {
	t.Helper()
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestRoutes_RequireToken(t *testing.T) {
	app, _, _ := setup(t)
	resp := do(t, app, httptest.NewRequest(http.MethodPost, "/api/candidates/c-1/resume-processing", nil), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_RequireScope(t *testing.T) {
	app, _, bearer := setup(t, auth.ScopeCandidatesRead)
	resp := do(t, app, httptest.NewRequest(http.MethodPost, "/api/vacancies/job-1/resume-processing", nil), bearer)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListCandidatesInReview(t *testing.T) {
	app, _, bearer := setup(t)

	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/vacancies/job-1/candidates/in-review", nil), bearer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[resume.CandidatesInReviewResponse](t, resp)
	assert.Equal(t, []kernel.CandidateID{"c-1", "c-2"}, body.Candidates)

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/vacancies/job-9/candidates/in-review", nil), bearer)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProcessVacancy(t *testing.T) {
	app, _, bearer := setup(t)

	resp := do(t, app, httptest.NewRequest(http.MethodPost, "/api/vacancies/job-1/resume-processing", nil), bearer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[resume.VacancyProcessingResponse](t, resp)
	require.Len(t, body.Summaries, 2)
	assert.Equal(t, resume.OutcomeProcessed, body.Summaries[0].Outcome)
	assert.Equal(t, 1, body.Skipped)
}

func TestProcessVacancyAsync(t *testing.T) {
	app, _, bearer := setup(t)

	resp := do(t, app, httptest.NewRequest(http.MethodPost, "/api/vacancies/job-1/resume-processing/async", nil), bearer)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	body := decode[resume.EnqueueResponse](t, resp)
	assert.Equal(t, []kernel.QueueJobID{"q-1"}, body.Jobs)
}

func TestProcessVacancyReport(t *testing.T) {
	app, _, bearer := setup(t)

	resp := do(t, app, httptest.NewRequest(http.MethodPost, "/api/vacancies/job-1/resume-processing/report", nil), bearer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxMIME, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "resume-processing-job-1.xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Candidates")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestProcessCandidate(t *testing.T) {
	app, _, bearer := setup(t)

	resp := do(t, app, httptest.NewRequest(http.MethodPost, "/api/candidates/c-7/resume-processing", nil), bearer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[resume.ProcessingSummary](t, resp)
	assert.Equal(t, kernel.CandidateID("c-7"), body.CandidateID)
	assert.Equal(t, resume.OutcomeNoSourceDocument, body.Outcome)
}

func TestLinkDocument(t *testing.T) {
	app, svc, bearer := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/api/candidates/c-1/documents",
		strings.NewReader(`{"source_url":"https://files.example.com/cv.pdf","source":"portal","size_bytes":2048}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp := do(t, app, req, bearer)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode[resume.SourceDocument](t, resp)
	assert.Equal(t, "CV_Ana_Diaz.pdf", body.FileName)
	assert.Equal(t, "portal", svc.linked.Source)
	assert.Equal(t, int64(2048), svc.linked.SizeBytes)
}

func TestLinkDocument_InvalidBody(t *testing.T) {
	app, _, bearer := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/api/candidates/c-1/documents", strings.NewReader(`{`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp := do(t, app, req, bearer)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadDocument(t *testing.T) {
	tests := []struct {
		name       string
		fileName   string
		content    []byte
		wantStatus int
	}{
		{"stored", "../Ana.txt", []byte("Experiencia Laboral"), http.StatusCreated},
		{"empty file", "cv.pdf", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, svc, bearer := setup(t)

			resp := do(t, app, multipartUploadTo(t, "/api/candidates/c-1/documents", tt.fileName, tt.content), bearer)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusCreated {
				return
			}
			body := decode[resume.SourceDocument](t, resp)
			assert.Equal(t, resume.DocumentSourceUpload, body.Source)
			assert.Equal(t, int64(len(tt.content)), body.SizeBytes)
			assert.Equal(t, "Ana.txt", svc.uploadName)
			assert.Equal(t, tt.content, svc.uploadData)
			assert.Empty(t, svc.linked.Source, "uploads do not go through the JSON link path")
		})
	}
}

func multipartUpload(t *testing.T, name string, content []byte) *http.Request {
	t.Helper()
	return multipartUploadTo(t, "/api/resumes/preview", name, content)
}

func multipartUploadTo(t *testing.T, target, name string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func TestPreview(t *testing.T) {
	app, svc, bearer := setup(t)

	resp := do(t, app, multipartUpload(t, "Ana.TXT", []byte("Experiencia Laboral")), bearer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[resume.NormalizedProfile](t, resp)
	require.Len(t, body.Experiences, 1)
	assert.Equal(t, "Acme", body.Experiences[0].Employer)
	assert.Equal(t, "Ana.TXT", svc.previewName)
	assert.Equal(t, []byte("Experiencia Laboral"), svc.previewData)
}

func TestPreview_Errors(t *testing.T) {
	app, _, bearer := setup(t)

	t.Run("missing file", func(t *testing.T) {
		resp := do(t, app, httptest.NewRequest(http.MethodPost, "/api/resumes/preview", nil), bearer)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty file", func(t *testing.T) {
		resp := do(t, app, multipartUpload(t, "cv.pdf", nil), bearer)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
