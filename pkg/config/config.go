package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides. The rest of
// the variable name maps onto config keys with underscores as section
// separators, e.g. ANVIL_IGNORE_ADDONS sets ignore.addons.
const EnvPrefix = "ANVIL_"

// Config is the user-level configuration, applying to every anvil run
// regardless of which template repository it expands.
type Config struct {
	// NoInput disables interactive prompting everywhere, as if every
	// command ran with --no-input.
	NoInput bool `koanf:"noinput" toml:"noinput"`

	// Ignore extends the ignore patterns applied while walking templates.
	Ignore IgnoreConfig `koanf:"ignore" toml:"ignore"`

	// Context supplies template variable defaults with the lowest
	// precedence; any repository or command line value overrides them.
	Context map[string]interface{} `koanf:"context" toml:"context"`
}

// IgnoreConfig configures template walking.
type IgnoreConfig struct {
	// Addons are ignore patterns appended to the built-in set.
	Addons []string `koanf:"addons" toml:"addons"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Context: map[string]interface{}{},
	}
}

// Path returns the user config file location under the XDG config home.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "anvil", "config.toml")
}

// Load reads the user configuration from its standard location, then
// applies ANVIL_* environment overrides.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads configuration in precedence order: built-in defaults,
// then the TOML file at path if it exists, then environment variables.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. User config file if present
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	// 3. Environment overrides
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.Context == nil {
		cfg.Context = map[string]interface{}{}
	}

	return &cfg, nil
}

func defaultMap() map[string]interface{} {
	return map[string]interface{}{
		"noinput": false,
	}
}
