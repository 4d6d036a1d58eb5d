// Package style provides terminal output styling for anvil.
//
// Styles are built on lipgloss with adaptive colors that switch between
// light and dark terminal themes. The package also handles output format
// detection (honoring NO_COLOR and non-terminal output) and markdown
// rendering via glamour for template descriptions and epilogs.
package style
