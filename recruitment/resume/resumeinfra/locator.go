package resumeinfra

import (
	"context"
	"embed"
	"path"
	"strings"

	"github.com/Abraxas-365/cvrelay/pkg/fsx"
	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/Abraxas-365/cvrelay/recruitment/resume"
)

// Resources holds the documents packaged with the service, the placeholder
// resume included.
//
//go:embed resources
var Resources embed.FS

// LocatorConfig names the path markers stored references may carry.
type LocatorConfig struct {
	// ProjectRoot is a leading segment stripped from stored paths, e.g.
	// "backend/".
	ProjectRoot string
	// ResourcesMarker starts the packaged-resource part of a stored path,
	// e.g. "src/main/resources/".
	ResourcesMarker string
	// ResourcesRoot is where the resource namespace lives inside the
	// resource reader.
	ResourcesRoot string
	// PlaceholderPath is read from the resource reader when nothing else
	// resolves.
	PlaceholderPath string
}

func DefaultLocatorConfig() LocatorConfig {
	return LocatorConfig{
		ProjectRoot:     "backend/",
		ResourcesMarker: "src/main/resources/",
		ResourcesRoot:   "resources",
		PlaceholderPath: "resources/cv/placeholder.json",
	}
}

// FileLocator resolves stored document references against a file store
// first and the packaged resources second.
type FileLocator struct {
	files     fsx.FileReader
	resources fsx.FileReader
	cfg       LocatorConfig
}

var _ resume.DocumentLocator = (*FileLocator)(nil)

func NewFileLocator(files, resources fsx.FileReader, cfg LocatorConfig) *FileLocator {
	return &FileLocator{files: files, resources: resources, cfg: cfg}
}

func (l *FileLocator) Locate(ctx context.Context, ref resume.DocumentRef) (*resume.LocatedDocument, error) {
	p := strings.TrimSpace(strings.ReplaceAll(ref.Path, "\\", "/"))

	if p != "" {
		if doc, ok := l.tryAll(ctx, l.files, l.fileCandidates(p), ref); ok {
			return doc, nil
		}
		if l.resources != nil {
			if doc, ok := l.tryAll(ctx, l.resources, l.resourceCandidates(p), ref); ok {
				return doc, nil
			}
		}
	}

	if l.resources != nil && l.cfg.PlaceholderPath != "" {
		data, err := l.resources.ReadFile(ctx, l.cfg.PlaceholderPath)
		if err == nil {
			return &resume.LocatedDocument{
				Data:        data,
				Name:        strings.ToLower(path.Base(l.cfg.PlaceholderPath)),
				Location:    l.cfg.PlaceholderPath,
				Placeholder: true,
			}, nil
		}
		logx.Warnf("Placeholder resume unavailable: %v", err)
	}

	return nil, resume.ErrDocumentNotFound().
		WithDetail("path", ref.Path).
		WithDetail("file_name", ref.FileName)
}

// fileCandidates lists the path as given, without the project root prefix,
// and from the resources marker on.
func (l *FileLocator) fileCandidates(p string) []string {
	candidates := []string{p}
	if root := l.cfg.ProjectRoot; root != "" {
		if i := strings.Index(p, root); i >= 0 {
			candidates = append(candidates, p[i+len(root):])
		}
	}
	if marker := l.cfg.ResourcesMarker; marker != "" {
		if i := strings.Index(p, marker); i >= 0 {
			candidates = append(candidates, p[i:])
		}
	}
	return dedupe(candidates)
}

// resourceCandidates maps the same transformations into the resource
// namespace.
func (l *FileLocator) resourceCandidates(p string) []string {
	var rel []string
	if marker := l.cfg.ResourcesMarker; marker != "" {
		if i := strings.Index(p, marker); i >= 0 {
			rel = append(rel, p[i+len(marker):])
		}
	}
	for _, c := range l.fileCandidates(p) {
		rel = append(rel, strings.TrimPrefix(c, "/"))
	}

	candidates := make([]string, 0, len(rel))
	for _, r := range rel {
		if l.cfg.ResourcesRoot != "" {
			candidates = append(candidates, path.Join(l.cfg.ResourcesRoot, r))
		} else {
			candidates = append(candidates, r)
		}
	}
	return dedupe(candidates)
}

func (l *FileLocator) tryAll(ctx context.Context, reader fsx.FileReader, candidates []string, ref resume.DocumentRef) (*resume.LocatedDocument, bool) {
	for _, c := range candidates {
		data, err := reader.ReadFile(ctx, c)
		if err != nil {
			if !fsx.IsNotFound(err) {
				logx.Debugf("Document candidate unreadable: %s: %v", c, err)
			}
			continue
		}

		name := strings.ToLower(strings.TrimSpace(ref.FileName))
		if name == "" {
			name = strings.ToLower(path.Base(c))
		}
		return &resume.LocatedDocument{Data: data, Name: name, Location: c}, true
	}
	return nil, false
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
