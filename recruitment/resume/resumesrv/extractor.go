package resumesrv

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/Abraxas-365/cvrelay/internal/textnorm"
	"github.com/Abraxas-365/cvrelay/pkg/errx"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
	"github.com/Abraxas-365/cvrelay/recruitment/resume/resumeparser"
)

const jsonExtension = ".json"

// Extractor reads a candidate's source document into an ExternalProfile.
// Document level failures degrade to an empty profile.
type Extractor struct {
	locator   resume.DocumentLocator
	parser    *resumeparser.Parser
	renderers map[string]resume.TextRenderer
}

// NewExtractor routes files by extension: ".json" to the JSON reader and
// every extension in renderers (".pdf", ".docx", ...) through text rendering
// and the text parser.
func NewExtractor(locator resume.DocumentLocator, parser *resumeparser.Parser, renderers map[string]resume.TextRenderer) *Extractor {
	byExt := make(map[string]resume.TextRenderer, len(renderers))
	for ext, r := range renderers {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		byExt[ext] = r
	}
	if parser == nil {
		parser = resumeparser.NewDefault()
	}
	return &Extractor{locator: locator, parser: parser, renderers: byExt}
}

// Extract never fails. Unresolvable references, unsupported formats and
// rendering failures are logged and yield an empty profile.
func (e *Extractor) Extract(ctx context.Context, doc *resume.SourceDocument) resume.ExternalProfile {
	log := logx.With(logx.Fields{
		"candidate_id": doc.CandidateID,
		"document_id":  doc.ID,
		"file_name":    doc.DispatchName(),
	})

	if doc.HasInlineContent() {
		profile, err := ReadJSON(doc.Inline)
		if err != nil {
			log.Warnf("Inline resume content unreadable: %v", err)
			return resume.EmptyProfile()
		}
		return profile
	}

	located, err := e.locator.Locate(ctx, resume.DocumentRef{Path: doc.FilePath, FileName: doc.DispatchName()})
	if err != nil {
		log.Warnf("Resume document could not be located: path=%s, error=%v", doc.FilePath, err)
		return resume.EmptyProfile()
	}
	if located.Placeholder {
		log.Warnf("Resume document missing, using placeholder: path=%s", doc.FilePath)
	}

	profile, err := e.Dispatch(ctx, located.Name, located.Data)
	if err != nil {
		log.Warnf("Resume document not extracted: location=%s, error=%v", located.Location, err)
		return resume.EmptyProfile()
	}

	log.Debugf("Resume extracted: formation=%d, experiences=%d, skills=%d",
		len(profile.Formation), len(profile.Experiences), len(profile.Skills))
	return profile
}

// Dispatch picks the reader for name's extension. Unsupported extensions
// return ErrUnsupportedFormat together with an empty profile.
func (e *Extractor) Dispatch(ctx context.Context, name string, data []byte) (resume.ExternalProfile, error) {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(name)))

	if ext == jsonExtension {
		return ReadJSON(data)
	}

	renderer, ok := e.renderers[ext]
	if !ok {
		return resume.EmptyProfile(), resume.ErrUnsupportedFormat().
			WithDetail("file_name", name).
			WithDetail("supported_formats", e.SupportedExtensions())
	}

	text, err := e.PlainText(ctx, renderer, data)
	if err != nil {
		return resume.EmptyProfile(), err
	}
	return e.parser.Parse(text), nil
}

// PlainText renders data and returns it in canonical composition form.
// Blank output is not an error; it parses to an empty profile.
func (e *Extractor) PlainText(ctx context.Context, renderer resume.TextRenderer, data []byte) (string, error) {
	text, err := renderer.RenderText(ctx, data)
	if err != nil {
		var xerr *errx.Error
		if errors.As(err, &xerr) {
			return "", err
		}
		return "", resume.ErrRenderFailed().WithCause(err)
	}
	return textnorm.Compose(text), nil
}

// Supports reports whether Dispatch has a reader for name's extension.
func (e *Extractor) Supports(name string) bool {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(name)))
	if ext == jsonExtension {
		return true
	}
	_, ok := e.renderers[ext]
	return ok
}

func (e *Extractor) SupportedExtensions() []string {
	exts := []string{jsonExtension}
	for ext := range e.renderers {
		exts = append(exts, ext)
	}
	return exts
}
