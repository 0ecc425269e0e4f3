package resumeinfra

import (
	"bytes"
	"context"
	"strings"

	"code.sajari.com/docconv"
	"github.com/Abraxas-365/cvrelay/internal/pdf"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

// FitzRenderer renders PDF documents with MuPDF.
type FitzRenderer struct{}

var _ resume.TextRenderer = FitzRenderer{}

func (FitzRenderer) RenderText(ctx context.Context, data []byte) (string, error) {
	if !pdf.IsPDF(data) {
		return "", resume.ErrRenderFailed().WithDetail("reason", "missing PDF header")
	}
	text, err := pdf.ExtractText(data)
	if err != nil {
		return "", resume.ErrRenderFailed().WithCause(err)
	}
	return text, nil
}

// DocconvRenderer renders office formats (docx, doc, odt, rtf) through
// docconv.
type DocconvRenderer struct {
	mimeType string
}

// NewDocconvRenderer returns a renderer for files with extension ext.
func NewDocconvRenderer(ext string) DocconvRenderer {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return DocconvRenderer{mimeType: docconv.MimeTypeByExtension("document." + ext)}
}

func (r DocconvRenderer) RenderText(ctx context.Context, data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), r.mimeType, true)
	if err != nil {
		return "", resume.ErrRenderFailed().
			WithDetail("mime_type", r.mimeType).
			WithCause(err)
	}
	return res.Body, nil
}

// PlainTextRenderer passes text files through unchanged.
type PlainTextRenderer struct{}

func (PlainTextRenderer) RenderText(ctx context.Context, data []byte) (string, error) {
	return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
}

// DefaultRenderers maps every renderable extension to its renderer.
func DefaultRenderers() map[string]resume.TextRenderer {
	renderers := map[string]resume.TextRenderer{
		".pdf": FitzRenderer{},
		".txt": PlainTextRenderer{},
	}
	for _, ext := range []string{".docx", ".doc", ".odt", ".rtf"} {
		renderers[ext] = NewDocconvRenderer(ext)
	}
	return renderers
}
