package skill

import (
	"net/http"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("SKILL")

var (
	CodeSkillNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Skill not found in catalog")
	CodeCatalogUnavailable  = ErrRegistry.Register("CATALOG_UNAVAILABLE", errx.TypeUnavailable, http.StatusServiceUnavailable, "Skill catalog unavailable")
	CodeInvalidSynonymRules = ErrRegistry.Register("INVALID_SYNONYM_RULES", errx.TypeValidation, http.StatusBadRequest, "Invalid synonym rules")
)

func ErrSkillNotFound() *errx.Error {
	return ErrRegistry.New(CodeSkillNotFound)
}

func ErrCatalogUnavailable() *errx.Error {
	return ErrRegistry.New(CodeCatalogUnavailable)
}

func ErrInvalidSynonymRules() *errx.Error {
	return ErrRegistry.New(CodeInvalidSynonymRules)
}
