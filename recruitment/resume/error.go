package resume

import (
	"net/http"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

// Error codes - Extraction
var (
	CodeDocumentNotFound       = ErrRegistry.Register("DOCUMENT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume document could not be located")
	CodeSourceDocumentNotFound = ErrRegistry.Register("SOURCE_DOCUMENT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate has no source document")
	CodeUnsupportedFormat      = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusUnsupportedMediaType, "Unsupported resume format")
	CodeRenderFailed           = ErrRegistry.Register("RENDER_FAILED", errx.TypeExternal, http.StatusUnprocessableEntity, "Failed to render document text")
	CodeInvalidJSON            = ErrRegistry.Register("INVALID_JSON", errx.TypeValidation, http.StatusBadRequest, "Invalid structured resume content")
	CodeEmptyUpload            = ErrRegistry.Register("EMPTY_UPLOAD", errx.TypeValidation, http.StatusBadRequest, "Uploaded file is empty")
	CodeInvalidRequest         = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Error codes - Registration
var (
	CodeDuplicateRecord    = ErrRegistry.RegisterRetryable("DUPLICATE_RECORD", errx.TypeConflict, http.StatusConflict, "Profile record was registered concurrently")
	CodeCandidateBusy      = ErrRegistry.RegisterRetryable("CANDIDATE_BUSY", errx.TypeConflict, http.StatusConflict, "Candidate is being processed by another run")
	CodeRegistrationFailed = ErrRegistry.Register("REGISTRATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to register profile")
	CodeDocumentSaveFailed = ErrRegistry.Register("DOCUMENT_SAVE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to save source document")
)

// Error codes - Queue
var (
	CodeQueueEnqueueFailed = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue job")
	CodeQueueDequeueFailed = ErrRegistry.Register("QUEUE_DEQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to dequeue job")
	CodeJobRetryFailed     = ErrRegistry.Register("JOB_RETRY_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to schedule job retry")
	CodeJobMaxRetries      = ErrRegistry.Register("JOB_MAX_RETRIES", errx.TypeInternal, http.StatusInternalServerError, "Job exceeded maximum retry attempts")
)

func ErrDocumentNotFound() *errx.Error {
	return ErrRegistry.New(CodeDocumentNotFound)
}

func ErrSourceDocumentNotFound() *errx.Error {
	return ErrRegistry.New(CodeSourceDocumentNotFound)
}

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrRenderFailed() *errx.Error {
	return ErrRegistry.New(CodeRenderFailed)
}

func ErrInvalidJSON() *errx.Error {
	return ErrRegistry.New(CodeInvalidJSON)
}

func ErrEmptyUpload() *errx.Error {
	return ErrRegistry.New(CodeEmptyUpload)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrDuplicateRecord() *errx.Error {
	return ErrRegistry.New(CodeDuplicateRecord)
}

func ErrCandidateBusy() *errx.Error {
	return ErrRegistry.New(CodeCandidateBusy)
}

func ErrRegistrationFailed() *errx.Error {
	return ErrRegistry.New(CodeRegistrationFailed)
}

func ErrDocumentSaveFailed() *errx.Error {
	return ErrRegistry.New(CodeDocumentSaveFailed)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrQueueDequeueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueDequeueFailed)
}

func ErrJobRetryFailed() *errx.Error {
	return ErrRegistry.New(CodeJobRetryFailed)
}

func ErrJobMaxRetries() *errx.Error {
	return ErrRegistry.New(CodeJobMaxRetries)
}
