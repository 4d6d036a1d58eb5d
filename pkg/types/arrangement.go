package types

// Arrangement indicates where a repository keeps its template content
type Arrangement string

const (
	// ArrangementRoot indicates the repository root is itself the template.
	// The project directory is synthesized at expansion time from the
	// project_name variable.
	ArrangementRoot Arrangement = "root"

	// ArrangementSubnode indicates a directory inside the repository holds
	// the template; everything outside it (docs, CI, the config file) is
	// not expanded.
	ArrangementSubnode Arrangement = "subnode"
)
