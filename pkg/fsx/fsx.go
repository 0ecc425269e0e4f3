package fsx

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/cvrelay/pkg/errx"
)

// FileReader reads whole files by path.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// FileWriter stores and removes files.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is a readable and writable store with its own path joining rules.
type FileSystem interface {
	FileReader
	FileWriter
	Join(elem ...string) string
}

var ErrRegistry = errx.NewRegistry("FSX")

var (
	CodeFileNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeReadFailed   = ErrRegistry.Register("READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to read file")
	CodeWriteFailed  = ErrRegistry.Register("WRITE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to write file")
	CodeDeleteFailed = ErrRegistry.Register("DELETE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to delete file")
	CodeInvalidPath  = ErrRegistry.Register("INVALID_PATH", errx.TypeValidation, http.StatusBadRequest, "Invalid file path")
)

func ErrFileNotFound(path string) *errx.Error {
	return ErrRegistry.New(CodeFileNotFound).WithDetail("path", path)
}

func ErrReadFailed(path string, cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeReadFailed, cause).WithDetail("path", path)
}

func ErrWriteFailed(path string, cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeWriteFailed, cause).WithDetail("path", path)
}

func ErrDeleteFailed(path string, cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeDeleteFailed, cause).WithDetail("path", path)
}

func ErrInvalidPath(path string) *errx.Error {
	return ErrRegistry.New(CodeInvalidPath).WithDetail("path", path)
}

// IsNotFound reports whether err means the file does not exist.
func IsNotFound(err error) bool {
	return errx.IsCode(err, CodeFileNotFound)
}
