// Package core orchestrates project generation. Generate ties the other
// packages together: it loads the user and template configuration, builds
// the rendering context from defaults, files, flags, and prompts, and runs
// the template expansion into the output directory.
package core
