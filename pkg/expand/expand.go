package expand

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/anvil/pkg/errors"
	"github.com/arthur-debert/anvil/pkg/ignore"
	"github.com/arthur-debert/anvil/pkg/logging"
	"github.com/arthur-debert/anvil/pkg/paths"
	"github.com/arthur-debert/anvil/pkg/renderer"
	"github.com/arthur-debert/anvil/pkg/types"
)

// ProjectNameTemplate names the synthesized project directory of a root
// arrangement. It is rendered like any on-disk directory name, so a
// missing project_name yields an empty name and the usual
// destination-exists failure rather than a special case.
const ProjectNameTemplate = "{{.project_name}}"

// Expander walks a template tree and materializes it under a target
// directory: directory names and file names render as templates, file
// contents render through the renderer, and ignored entries are skipped.
// Writes happen as the walk progresses; a failure leaves the output
// partially written and the input untouched.
type Expander struct {
	fs       types.FS
	renderer *renderer.Renderer
	resolver *paths.Resolver
	dryRun   bool
	logger   zerolog.Logger

	dirs  []string
	files []string
}

// New creates an Expander. With dryRun set it records what it would
// create without touching the filesystem.
func New(fsys types.FS, r *renderer.Renderer, res *paths.Resolver, dryRun bool) *Expander {
	return &Expander{
		fs:       fsys,
		renderer: r,
		resolver: res,
		dryRun:   dryRun,
		logger:   logging.GetLogger("expand"),
	}
}

// Expand renders the tree rooted at src into a directory under targetDir.
// The directory's name comes from rendering the source's own name, or
// ProjectNameTemplate for the root source. Entries are processed in
// lexicographic order so runs are deterministic.
func (e *Expander) Expand(src types.Source, targetDir string, ctx types.Context, ign ignore.Func) error {
	nameTemplate := ProjectNameTemplate
	if !src.AtRoot() {
		nameTemplate = filepath.Base(src.RelPath())
	}

	rendered, err := e.renderer.RenderString(nameTemplate, nameTemplate, ctx)
	if err != nil {
		return err
	}

	destDir := filepath.Join(targetDir, rendered)
	if err := e.createDir(destDir); err != nil {
		return err
	}

	sourceAbs, err := e.resolver.TemplateParentJoin(src.RelPath())
	if err != nil {
		return err
	}

	entries, err := e.fs.ReadDir(sourceAbs)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to list template directory %s", sourceAbs)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var skipped map[string]struct{}
	if ign != nil {
		skipped = ign(sourceAbs, names)
	}

	for _, name := range names {
		if _, ok := skipped[name]; ok {
			e.logger.Debug().
				Str("dir", sourceAbs).
				Str("entry", name).
				Msg("Skipping ignored entry")
			continue
		}

		child := src.Child(name)
		childAbs := filepath.Join(sourceAbs, name)

		// Stat rather than the dir entry so symlinked directories are
		// walked like real ones
		info, err := e.fs.Stat(childAbs)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess,
				"failed to stat %s", childAbs)
		}

		if info.IsDir() {
			if err := e.Expand(child, destDir, ctx, ign); err != nil {
				return err
			}
		} else {
			if err := e.renderFile(child, destDir, ctx); err != nil {
				return err
			}
		}
	}

	return nil
}

// CreatedDirs returns the directories created so far, in creation order.
// The first entry of a completed run is the project directory itself.
func (e *Expander) CreatedDirs() []string {
	out := make([]string, len(e.dirs))
	copy(out, e.dirs)
	return out
}

// RenderedFiles returns the files written so far, in creation order.
func (e *Expander) RenderedFiles() []string {
	out := make([]string, len(e.files))
	copy(out, e.files)
	return out
}

// createDir creates path, failing if anything already occupies it. There
// is no merging with existing trees and no overwrite.
func (e *Expander) createDir(path string) error {
	if _, err := e.fs.Lstat(path); err == nil {
		return errors.Newf(errors.ErrDestExists,
			"destination already exists: %s", path).
			WithDetail("path", path)
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to check destination %s", path)
	}

	e.logger.Debug().Str("dir", path).Bool("dryRun", e.dryRun).Msg("Creating directory")

	if !e.dryRun {
		if err := e.fs.MkdirAll(path, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create directory %s", path)
		}
	}

	e.dirs = append(e.dirs, path)
	return nil
}

// renderFile renders one template file into targetDir. The file's name is
// itself a template; its content renders against the same context.
func (e *Expander) renderFile(src types.Source, targetDir string, ctx types.Context) error {
	base := filepath.Base(src.RelPath())

	name, err := e.renderer.RenderString(base, base, ctx)
	if err != nil {
		return err
	}

	content, err := e.renderer.RenderFile(src.RelPath(), ctx)
	if err != nil {
		return err
	}

	dest := filepath.Join(targetDir, name)
	e.logger.Debug().
		Str("source", src.RelPath()).
		Str("dest", dest).
		Bool("dryRun", e.dryRun).
		Msg("Rendering file")

	if !e.dryRun {
		if err := e.fs.WriteFile(dest, []byte(content), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite,
				"failed to write %s", dest).
				WithDetail("source", src.RelPath())
		}
	}

	e.files = append(e.files, dest)
	return nil
}
