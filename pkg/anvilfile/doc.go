// Package anvilfile loads the anvil.yaml configuration a template
// repository ships at its root.
//
// The file is a flat YAML mapping with two kinds of keys: reserved keys
// carrying the anvil_ prefix configure the tool (title, description,
// epilog, template_dir), and every other key declares a template variable
// default. The partition is purely lexical, so repositories can freely
// name their own variables anything outside the reserved prefix.
package anvilfile
