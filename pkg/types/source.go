package types

import "path/filepath"

// Source identifies a node of the template tree by its path relative to the
// template parent. The root source stands for the template root itself in a
// root arrangement, where no on-disk directory name exists to render and the
// project directory is synthesized instead.
type Source struct {
	atRoot bool
	rel    string
}

// RootSource returns the source for the template root of a root arrangement.
func RootSource() Source {
	return Source{atRoot: true}
}

// SubdirSource returns the source for a directory at rel, relative to the
// template parent.
func SubdirSource(rel string) Source {
	return Source{rel: rel}
}

// AtRoot reports whether this is the root source.
func (s Source) AtRoot() bool {
	return s.atRoot
}

// RelPath returns the path relative to the template parent. It is empty for
// the root source, which joins cleanly back to the parent itself.
func (s Source) RelPath() string {
	return s.rel
}

// Child returns the source for a named entry under this one.
func (s Source) Child(name string) Source {
	return Source{rel: filepath.Join(s.rel, name)}
}

func (s Source) String() string {
	if s.atRoot {
		return "."
	}
	return s.rel
}
