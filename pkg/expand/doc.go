// Package expand materializes a template tree into an output directory.
//
// The walk mirrors the template repository's structure: every directory
// renders its name and recreates itself under the target, every file
// renders both its name and its content. A root-arrangement repository
// has no on-disk directory for the project root, so the expander
// synthesizes one from the project_name variable.
//
// Expansion is write-as-you-go. When a node fails, everything already
// produced stays on disk and the error reports the failing node; the
// input repository is never modified.
package expand
