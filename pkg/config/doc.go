// Package config handles user-level configuration for anvil.
// It loads settings in precedence order from built-in defaults, the TOML
// file under the XDG config home, and ANVIL_* environment variables.
package config
