package core

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/anvil/pkg/anvilfile"
	"github.com/arthur-debert/anvil/pkg/config"
	"github.com/arthur-debert/anvil/pkg/errors"
	"github.com/arthur-debert/anvil/pkg/expand"
	"github.com/arthur-debert/anvil/pkg/filesystem"
	"github.com/arthur-debert/anvil/pkg/ignore"
	"github.com/arthur-debert/anvil/pkg/logging"
	"github.com/arthur-debert/anvil/pkg/paths"
	"github.com/arthur-debert/anvil/pkg/prompt"
	"github.com/arthur-debert/anvil/pkg/renderer"
	"github.com/arthur-debert/anvil/pkg/types"
)

// DefaultProjectName seeds project_name when neither the configuration nor
// the user provides one.
const DefaultProjectName = "defaultproject"

// GenerateOptions defines the options for the Generate command.
type GenerateOptions struct {
	// InputPath is the template repository to expand.
	InputPath string
	// OutputPath is the directory the project is generated into. Empty
	// means the current working directory.
	OutputPath string
	// Vars holds key=value context overrides from the command line.
	Vars []string
	// VarsFile is an optional YAML file of context overrides.
	VarsFile string
	// NoInput disables interactive prompting.
	NoInput bool
	// Force removes an existing project directory before expanding.
	Force bool
	// DryRun plans the run without writing anything.
	DryRun bool
	// Prompter collects context values interactively. Nil disables
	// prompting the same way NoInput does.
	Prompter prompt.Prompter
	// AppConfig overrides the user-level configuration (optional,
	// defaults to config.Load)
	AppConfig *config.Config
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// GenerateResult reports what a generate run produced.
type GenerateResult struct {
	// ProjectDir is the generated project directory.
	ProjectDir string
	// Dirs lists every directory created, in creation order. The first
	// entry is the project directory itself.
	Dirs []string
	// Files lists every file rendered, in creation order.
	Files []string
	// DryRun reports whether the run only planned the output.
	DryRun bool
	// Title and Epilog carry template metadata for display.
	Title  string
	Epilog string
}

// Generate expands a template repository into a new project directory.
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	log := logging.GetLogger("core.generate")
	done := logging.LogOperationStart(log, "generate")
	defer done()

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	// 1. Resolve and validate the input repository
	inputRoot, err := ResolveInput(fs, opts.InputPath)
	if err != nil {
		return nil, err
	}

	// 2. Resolve the output root
	outputRoot := opts.OutputPath
	if outputRoot == "" {
		outputRoot, err = os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal,
				"failed to determine working directory")
		}
	}
	outputRoot, err = filepath.Abs(outputRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidPath,
			"failed to resolve output path %s", opts.OutputPath)
	}

	// 3. User configuration
	cfg := opts.AppConfig
	if cfg == nil {
		cfg, err = config.Load()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad,
				"failed to load user configuration")
		}
	}

	// 4. Template configuration and path resolution
	af, err := anvilfile.Load(fs, inputRoot)
	if err != nil {
		return nil, err
	}
	res, err := paths.NewResolver(inputRoot, af.TemplateDir())
	if err != nil {
		return nil, err
	}

	// 5. Ignore predicate. The template config file sits inside the
	// walked tree only for root arrangements, so only then does it need
	// an addon to keep it out of the output.
	addons := append([]string{}, cfg.Ignore.Addons...)
	if af.Arrangement() == types.ArrangementRoot {
		addons = append(addons, anvilfile.FileName)
	}
	ign := ignore.New(nil, addons)

	// 6. Rendering context
	ctx, err := buildContext(fs, cfg, af, opts)
	if err != nil {
		return nil, err
	}

	rend := renderer.New(fs, res.TemplateParent())
	src := res.Source()

	// 7. Force mode clears a previous project directory
	if opts.Force && !opts.DryRun {
		if err := removeExisting(fs, rend, src, outputRoot, ctx, log); err != nil {
			return nil, err
		}
	}

	// 8. Expand the tree
	exp := expand.New(fs, rend, res, opts.DryRun)
	if err := exp.Expand(src, outputRoot, ctx, ign); err != nil {
		return nil, err
	}

	dirs := exp.CreatedDirs()
	files := exp.RenderedFiles()

	result := &GenerateResult{
		Dirs:   dirs,
		Files:  files,
		DryRun: opts.DryRun,
		Title:  af.Title,
		Epilog: af.Epilog,
	}
	if len(dirs) > 0 {
		result.ProjectDir = dirs[0]
	}

	log.Info().
		Str("projectDir", result.ProjectDir).
		Int("dirs", len(dirs)).
		Int("files", len(files)).
		Bool("dryRun", opts.DryRun).
		Msg("Generation finished")

	return result, nil
}

// ResolveInput validates a template repository path and returns it in
// absolute form. The path must name an existing directory.
func ResolveInput(fs types.FS, path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "input path cannot be empty")
	}
	inputRoot, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidPath,
			"failed to resolve input path %s", path)
	}
	info, err := fs.Stat(inputRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrNotFound,
				"input path does not exist: %s", inputRoot)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"failed to read input path %s", inputRoot)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrInvalidInput,
			"input path is not a directory: %s", inputRoot)
	}
	return inputRoot, nil
}

// removeExisting renders the project directory name the same way the
// expander will and removes a previous tree at that destination. Only a
// name resolving to a strict child of the output root is removed; empty,
// dot, parent-relative, and absolute names leave the destination alone
// and the expansion fails on it instead.
func removeExisting(fs types.FS, rend *renderer.Renderer, src types.Source, outputRoot string, ctx types.Context, log zerolog.Logger) error {
	nameTemplate := expand.ProjectNameTemplate
	if !src.AtRoot() {
		nameTemplate = filepath.Base(src.RelPath())
	}
	name, err := rend.RenderString(nameTemplate, nameTemplate, ctx)
	if err != nil {
		return err
	}
	if !filepath.IsLocal(name) {
		log.Debug().Str("name", name).Msg("Rendered name is not a child of the output root, skipping removal")
		return nil
	}

	dest := filepath.Join(outputRoot, name)
	if _, err := fs.Lstat(dest); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to check destination %s", dest)
	}

	log.Debug().Str("dir", dest).Msg("Removing existing project directory")
	if err := fs.RemoveAll(dest); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"failed to remove %s", dest)
	}
	return nil
}
