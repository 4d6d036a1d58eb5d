package core

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/anvil/pkg/anvilfile"
	"github.com/arthur-debert/anvil/pkg/config"
	"github.com/arthur-debert/anvil/pkg/errors"
	"github.com/arthur-debert/anvil/pkg/prompt"
	"github.com/arthur-debert/anvil/pkg/types"
)

// buildContext assembles the rendering context in precedence order: user
// configuration defaults, then template defaults, then the vars file, then
// command-line overrides, then interactive prompts. The configuration map
// itself is never mutated.
func buildContext(fs types.FS, cfg *config.Config, af *anvilfile.AnvilFile, opts GenerateOptions) (types.Context, error) {
	ctx := types.Context(cfg.Context).Clone()
	ctx.Merge(af.ContextVars)

	if opts.VarsFile != "" {
		vars, err := readVarsFile(fs, opts.VarsFile)
		if err != nil {
			return nil, err
		}
		ctx.Merge(vars)
	}

	overrides, err := parseVars(opts.Vars)
	if err != nil {
		return nil, err
	}
	ctx.Merge(overrides)

	if _, ok := ctx["project_name"]; !ok {
		ctx["project_name"] = DefaultProjectName
	}

	if opts.Prompter != nil && !opts.NoInput && !cfg.NoInput {
		if err := promptContext(opts.Prompter, ctx); err != nil {
			return nil, err
		}
	}

	return ctx, nil
}

// parseVars turns key=value pairs into a context. Values stay strings.
func parseVars(vars []string) (types.Context, error) {
	ctx := types.Context{}
	for _, v := range vars {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"invalid variable %q, expected key=value", v)
		}
		ctx[key] = value
	}
	return ctx, nil
}

// readVarsFile loads context overrides from a YAML file.
func readVarsFile(fs types.FS, path string) (types.Context, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to read variables file %s", path)
	}

	var vars map[string]interface{}
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to parse variables file %s", path)
	}
	return types.Context(vars), nil
}

// promptContext asks for each scalar context value in key order, seeded
// with the current value. An answer equal to the seed keeps the original
// typed value, so an untouched numeric default stays numeric.
func promptContext(p prompt.Prompter, ctx types.Context) error {
	names := make([]string, 0, len(ctx))
	for name := range ctx {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch ctx[name].(type) {
		case map[string]interface{}, []interface{}, types.Context:
			continue
		}

		def := ""
		if ctx[name] != nil {
			def = fmt.Sprintf("%v", ctx[name])
		}

		answer, err := p.Ask(name, def)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal,
				"failed to prompt for %s", name)
		}
		if answer != def {
			ctx[name] = answer
		}
	}
	return nil
}
