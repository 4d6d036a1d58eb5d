package anvilfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	anvilerrors "github.com/arthur-debert/anvil/pkg/errors"
	"github.com/arthur-debert/anvil/pkg/logging"
	"github.com/arthur-debert/anvil/pkg/types"
)

const (
	// FileName is the per-repository configuration file anvil looks for
	// at the input root.
	FileName = "anvil.yaml"

	// ReservedPrefix marks keys that configure anvil itself. Everything
	// else in the file is a template variable default.
	ReservedPrefix = "anvil_"
)

// AnvilFile holds the parsed anvil.yaml of a template repository. A missing
// or empty file yields the zero configuration: root arrangement, no variable
// defaults, no display strings.
type AnvilFile struct {
	// Title and Description are shown before prompting, Epilog after a
	// successful expansion.
	Title       string
	Description string
	Epilog      string

	// ContextVars are the repository's template variable defaults, the
	// keys that did not carry the reserved prefix.
	ContextVars types.Context

	// templateDir keeps the raw anvil_template_dir value. Several
	// spellings mean "the repository root is the template", so the
	// interpretation lives in TemplateDir and Arrangement.
	templateDir any
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load reads and parses <inputRoot>/anvil.yaml. A missing file is not an
// error; the repository is then treated as a bare root-arrangement template
// with no defaults.
func Load(fsys types.FS, inputRoot string) (*AnvilFile, error) {
	logger := logging.GetLogger("anvilfile")

	path := filepath.Join(inputRoot, FileName)
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No anvil.yaml, using defaults")
			return newAnvilFile(), nil
		}
		return nil, anvilerrors.Wrapf(err, anvilerrors.ErrConfigLoad,
			"failed to read %s", path)
	}

	af, err := Parse(data)
	if err != nil {
		return nil, anvilerrors.Wrapf(err, anvilerrors.ErrConfigParse,
			"failed to parse %s", path)
	}
	return af, nil
}

// Parse parses anvil.yaml content and partitions its top-level keys into
// tool configuration and template variable defaults.
func Parse(data []byte) (*AnvilFile, error) {
	logger := logging.GetLogger("anvilfile")

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, yaml.Parser()); err != nil {
		return nil, err
	}

	af := newAnvilFile()
	for key, value := range k.Raw() {
		if !strings.HasPrefix(key, ReservedPrefix) {
			af.ContextVars[key] = value
			continue
		}

		switch strings.TrimPrefix(key, ReservedPrefix) {
		case "title":
			af.Title = stringify(value)
		case "description":
			af.Description = stringify(value)
		case "epilog":
			af.Epilog = stringify(value)
		case "template_dir":
			af.templateDir = value
		default:
			// reserved for future tool keys, never leaked into the context
			logger.Debug().Str("key", key).Msg("Ignoring unrecognized reserved key")
		}
	}

	return af, nil
}

// TemplateDir returns the configured template directory relative to the
// input root, or "" when the repository root itself is the template. The
// values "", ".", "None" and "none" (and an absent key) all normalize
// to "".
func (a *AnvilFile) TemplateDir() string {
	switch s := stringify(a.templateDir); s {
	case "", ".", "None", "none":
		return ""
	default:
		return s
	}
}

// Arrangement reports where this repository keeps its template content.
func (a *AnvilFile) Arrangement() types.Arrangement {
	if a.TemplateDir() == "" {
		return types.ArrangementRoot
	}
	return types.ArrangementSubnode
}

func newAnvilFile() *AnvilFile {
	return &AnvilFile{ContextVars: make(types.Context)}
}

// stringify renders a YAML scalar as a string; nil stays empty so absent
// and explicit-null keys behave the same
func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
