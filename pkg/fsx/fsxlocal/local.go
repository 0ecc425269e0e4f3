package fsxlocal

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Abraxas-365/cvrelay/pkg/fsx"
)

// LocalFileSystem resolves relative paths against Root. Absolute paths are
// used as given.
type LocalFileSystem struct {
	Root string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

func NewLocalFileSystem(root string) *LocalFileSystem {
	if root == "" {
		root = "."
	}
	return &LocalFileSystem{Root: root}
}

func (l *LocalFileSystem) resolve(path string) (string, error) {
	if path == "" {
		return "", fsx.ErrInvalidPath(path)
	}
	p := filepath.FromSlash(path)
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Join(l.Root, p), nil
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.ErrFileNotFound(full)
		}
		return nil, fsx.ErrReadFailed(full, err)
	}
	return data, nil
}

func (l *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	full, err := l.resolve(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fsx.ErrReadFailed(full, err)
	}
	return !info.IsDir(), nil
}

func (l *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsx.ErrWriteFailed(full, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fsx.ErrWriteFailed(full, err)
	}
	return nil
}

func (l *LocalFileSystem) DeleteFile(ctx context.Context, path string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fsx.ErrDeleteFailed(full, err)
	}
	return nil
}

func (l *LocalFileSystem) Join(elem ...string) string {
	return filepath.ToSlash(filepath.Join(elem...))
}
