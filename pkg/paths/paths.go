package paths

import (
	"path/filepath"

	"github.com/arthur-debert/anvil/pkg/errors"
	"github.com/arthur-debert/anvil/pkg/types"
)

// Resolver computes absolute paths for a single template repository.
// Relative paths flowing through the expansion are always joined through a
// Resolver so that an absolute path smuggled in as a relative one fails
// loudly instead of silently escaping the repository.
type Resolver struct {
	// inputRoot is the absolute path of the template repository
	inputRoot string

	// templateParent is the directory template sources resolve against.
	// Template content loads relative to the parent rather than the
	// template root so the root's own directory name can be rendered
	// like any other node.
	templateParent string

	// templateName is the template root's name under templateParent,
	// empty in a root arrangement where no such directory exists
	templateName string
}

// NewResolver creates a Resolver for the repository at inputRoot.
// templateDir is the anvil_template_dir value relative to the input root;
// empty means the root arrangement, where the repository root itself is
// the template.
func NewResolver(inputRoot, templateDir string) (*Resolver, error) {
	r := &Resolver{inputRoot: inputRoot}

	if templateDir == "" {
		// splitting <root>/ leaves the parent at the root itself and no
		// name to render; the expander synthesizes the project directory
		r.templateParent = inputRoot
		r.templateName = ""
		return r, nil
	}

	templateRoot, err := r.InputPath(templateDir)
	if err != nil {
		return nil, err
	}
	r.templateParent = filepath.Dir(templateRoot)
	r.templateName = filepath.Base(templateRoot)
	return r, nil
}

// InputRoot returns the absolute path of the template repository.
func (r *Resolver) InputRoot() string {
	return r.inputRoot
}

// InputPath joins rel onto the input root. rel must be relative.
func (r *Resolver) InputPath(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", errors.Newf(errors.ErrInvalidPath,
			"expected path relative to the input root, got absolute path %q", rel)
	}
	return filepath.Join(r.inputRoot, rel), nil
}

// TemplateParent returns the directory template sources resolve against.
func (r *Resolver) TemplateParent() string {
	return r.templateParent
}

// TemplateName returns the template root's directory name, or "" in a root
// arrangement.
func (r *Resolver) TemplateName() string {
	return r.templateName
}

// TemplateRoot returns the absolute path of the template content root.
func (r *Resolver) TemplateRoot() string {
	return filepath.Join(r.templateParent, r.templateName)
}

// TemplateParentJoin joins rel onto the template parent. rel must be
// relative; an empty rel returns the parent itself.
func (r *Resolver) TemplateParentJoin(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", errors.Newf(errors.ErrInvalidPath,
			"expected path relative to the template parent, got absolute path %q", rel)
	}
	return filepath.Join(r.templateParent, rel), nil
}

// Source returns the starting source for expanding this repository: the
// root source when the repository root is the template, otherwise the
// template root's own directory.
func (r *Resolver) Source() types.Source {
	if r.templateName == "" {
		return types.RootSource()
	}
	return types.SubdirSource(r.templateName)
}
