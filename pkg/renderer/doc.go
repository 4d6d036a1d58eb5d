// Package renderer evaluates text/template expressions for the expansion
// pipeline: directory names, file names and file contents all go through
// the same Renderer.
//
// Rendering is permissive about undefined variables: a reference to a key
// the context does not hold renders as an empty string rather than
// failing. Reaching through an undefined variable ({{.missing.attr}}) is
// still a render error, as is malformed template syntax.
package renderer
