package template

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nexpatch/pkg/errors"
	"github.com/arthur-debert/nexpatch/pkg/filesystem"
	"github.com/arthur-debert/nexpatch/pkg/logging"
	"github.com/arthur-debert/nexpatch/pkg/pathmatch"
	"github.com/arthur-debert/nexpatch/pkg/rewrite"
	"github.com/arthur-debert/nexpatch/pkg/types"
	"github.com/rs/zerolog"
)

var errNoRoot = stderrors.New("document has no root element")

// Options configures a Patcher. Zero values fall back to defaults.
type Options struct {
	// Marker flags string elements for patching
	Marker string

	// WritePolicy decides when the template is written back
	WritePolicy WritePolicy

	// FileMode is used if the template has to be created on write
	FileMode fs.FileMode

	// FS performs all template I/O
	FS types.FS

	// Getwd resolves relative workpaths
	Getwd func() (string, error)
}

// Patcher rewrites the marked string elements of project templates
type Patcher struct {
	opts   Options
	logger zerolog.Logger
}

// NewPatcher creates a patcher, filling unset options with defaults
func NewPatcher(opts Options) *Patcher {
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	if opts.WritePolicy == "" {
		opts.WritePolicy = DefaultWritePolicy
	}
	if opts.FileMode == 0 {
		opts.FileMode = 0644
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Getwd == nil {
		opts.Getwd = os.Getwd
	}

	return &Patcher{
		opts:   opts,
		logger: logging.GetLogger("template.patcher"),
	}
}

// Destination returns the escaped directory paths in project's template are
// rewritten to: the absolute workpath with a trailing separator.
func (p *Patcher) Destination(project types.Project) (string, error) {
	dir, err := p.workdir(project)
	if err != nil {
		return "", err
	}
	return rewrite.EscapeBackslashes(dir), nil
}

// TemplatePath returns the absolute location of project's template
func (p *Patcher) TemplatePath(project types.Project) (string, error) {
	_, path, err := p.resolve(project)
	return path, err
}

// Patch rewrites project's template in place and reports what changed.
//
// Read and parse failures leave the file untouched. A failed write may leave
// it partially written; there is no atomic replace.
func (p *Patcher) Patch(project types.Project) (*types.PatchResult, error) {
	logger := p.logger.With().Str("project", project.UID).Logger()
	done := logging.LogOperationStart(logger, "patch template")
	defer done()

	dir, templatePath, err := p.resolve(project)
	if err != nil {
		return nil, err
	}
	destination := rewrite.EscapeBackslashes(dir)

	raw, doc, err := p.load(project, templatePath)
	if err != nil {
		return nil, err
	}

	result := &types.PatchResult{
		Project:      project,
		TemplatePath: templatePath,
		Destination:  destination,
	}

	for i, el := range doc.stringElements() {
		original := textContent(el)
		content := Decode(p.opts.Marker, original)
		if !content.Marked() {
			continue
		}
		result.Visited++

		payload := content.Payload()
		updated := rewrite.Rewrite(payload, destination)
		setTextContent(el, updated)

		if updated != original {
			logger.Info().
				Str("old", original).
				Str("new", updated).
				Msg("Rewrote string element")
			result.Changes = append(result.Changes, types.NodeChange{
				Index: i,
				Old:   original,
				New:   updated,
				Paths: rewrite.Count(payload),
			})
		}
	}

	if !p.wantsWrite(result) {
		logger.Debug().
			Str("policy", p.opts.WritePolicy.String()).
			Int("visited", result.Visited).
			Msg("Template left as is")
		return result, nil
	}

	out, err := doc.bytes()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot serialize template %s", templatePath).
			WithDetail("project", project.UID)
	}

	if p.opts.WritePolicy == WriteChanged && bytes.Equal(out, raw) {
		logger.Debug().Msg("Serialized template is identical, skipping write")
		return result, nil
	}

	if err := p.opts.FS.WriteFile(templatePath, out, p.opts.FileMode); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateWrite, "cannot write template %s", templatePath).
			WithDetail("project", project.UID).
			WithDetail("path", templatePath)
	}
	result.Written = true

	logger.Debug().
		Str("path", templatePath).
		Int("visited", result.Visited).
		Int("changed", len(result.Changes)).
		Msg("Template written")

	return result, nil
}

// Inspect reports the marked elements of project's template and what
// patching would turn them into. It never writes.
func (p *Patcher) Inspect(project types.Project) (*types.ScanResult, error) {
	dir, templatePath, err := p.resolve(project)
	if err != nil {
		return nil, err
	}
	destination := rewrite.EscapeBackslashes(dir)

	_, doc, err := p.load(project, templatePath)
	if err != nil {
		return nil, err
	}

	elements := doc.stringElements()
	result := &types.ScanResult{
		Project:      project,
		TemplatePath: templatePath,
		Destination:  destination,
		StringNodes:  len(elements),
	}

	for i, el := range elements {
		content := Decode(p.opts.Marker, textContent(el))
		if !content.Marked() {
			continue
		}

		payload := content.Payload()
		node := types.MarkedNode{
			Index:   i,
			Payload: payload,
			Result:  rewrite.Rewrite(payload, destination),
		}
		for _, m := range pathmatch.FindAll(payload) {
			node.Paths = append(node.Paths, types.PathRef{Text: m.Text(payload), Style: m.Style.String()})
		}
		result.Marked = append(result.Marked, node)
	}

	return result, nil
}

func (p *Patcher) wantsWrite(result *types.PatchResult) bool {
	switch p.opts.WritePolicy {
	case WriteAlways:
		return true
	case WriteChanged:
		return result.Changed()
	default:
		return result.Visited > 0
	}
}

// resolve returns the absolute workpath with a trailing separator and the
// template path inside it
func (p *Patcher) resolve(project types.Project) (string, string, error) {
	if strings.TrimSpace(project.Template) == "" {
		return "", "", errors.Newf(errors.ErrProjectInvalid, "project %q has no template", project.UID).
			WithDetail("project", project.UID)
	}

	dir, err := p.workdir(project)
	if err != nil {
		return "", "", err
	}

	resolved := project
	resolved.Workpath = dir
	return dir, resolved.TemplatePath(), nil
}

func (p *Patcher) workdir(project types.Project) (string, error) {
	dir := project.Workpath
	if !filepath.IsAbs(dir) {
		cwd, err := p.opts.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "cannot resolve working directory").
				WithDetail("project", project.UID)
		}
		dir = filepath.Join(cwd, dir)
	}

	dir = filepath.Clean(dir)
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return dir, nil
}

// load reads and parses the template at path
func (p *Patcher) load(project types.Project, path string) ([]byte, *document, error) {
	raw, err := p.opts.FS.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrTemplateRead, "cannot read template %s", path).
			WithDetail("project", project.UID).
			WithDetail("path", path)
	}

	doc, err := parseDocument(raw)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrTemplateParse, "cannot parse template %s", path).
			WithDetail("project", project.UID).
			WithDetail("path", path)
	}

	return raw, doc, nil
}
