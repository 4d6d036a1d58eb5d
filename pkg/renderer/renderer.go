package renderer

import (
	"bytes"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/arthur-debert/anvil/pkg/errors"
	"github.com/arthur-debert/anvil/pkg/types"
)

// missingValue is what text/template prints for an unresolvable value.
// Even with missingkey=zero, a key absent from a map[string]any yields an
// invalid reflect.Value and prints this marker, so it gets scrubbed to
// keep undefined variables rendering as empty strings.
const missingValue = "<no value>"

// Renderer renders template expressions against a variable context.
// Content templates are loaded relative to root, the template parent
// directory, so the template root's own name resolves like any other
// template path.
type Renderer struct {
	fs   types.FS
	root string
}

// New creates a Renderer that loads template files under root.
func New(fsys types.FS, root string) *Renderer {
	return &Renderer{fs: fsys, root: root}
}

// RenderString renders a one-off template expression such as a file or
// directory name. name labels the template in error messages.
func (r *Renderer) RenderString(name, text string, ctx types.Context) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateParse,
			"failed to parse template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender,
			"failed to render template %q", name)
	}

	return strings.ReplaceAll(buf.String(), missingValue, ""), nil
}

// RenderFile loads the file at rel, relative to the renderer's root, and
// renders its content. The content is treated as UTF-8 text.
func (r *Renderer) RenderFile(rel string, ctx types.Context) (string, error) {
	data, err := r.fs.ReadFile(filepath.Join(r.root, rel))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"failed to read template file %s", rel)
	}
	return r.RenderString(rel, string(data), ctx)
}
