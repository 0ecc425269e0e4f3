package candidate

import (
	"net/http"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

var (
	CodeCandidateNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeCandidateArchived = ErrRegistry.Register("ARCHIVED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Candidate is archived")
)

func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrCandidateArchived() *errx.Error {
	return ErrRegistry.New(CodeCandidateArchived)
}
