// Package fsxembed exposes an io/fs tree, typically an embed.FS of packaged
// resources, as a read-only fsx.FileReader.
package fsxembed

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/Abraxas-365/cvrelay/pkg/fsx"
)

type Reader struct {
	fsys fs.FS
}

var _ fsx.FileReader = (*Reader)(nil)

func NewReader(fsys fs.FS) *Reader {
	return &Reader{fsys: fsys}
}

// clean converts a slash path into the unrooted form io/fs requires.
func clean(p string) (string, bool) {
	p = path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		return "", false
	}
	return p, fs.ValidPath(p)
}

func (r *Reader) ReadFile(ctx context.Context, name string) ([]byte, error) {
	p, ok := clean(name)
	if !ok {
		return nil, fsx.ErrInvalidPath(name)
	}

	data, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.ErrFileNotFound(p)
		}
		return nil, fsx.ErrReadFailed(p, err)
	}
	return data, nil
}

func (r *Reader) Exists(ctx context.Context, name string) (bool, error) {
	p, ok := clean(name)
	if !ok {
		return false, nil
	}

	info, err := fs.Stat(r.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fsx.ErrReadFailed(p, err)
	}
	return !info.IsDir(), nil
}
