package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. It supports
// symlinks and per-path error injection, which makes failure paths
// testable without touching the real filesystem. Symlinks resolve one
// level at the final path component only; paths routed through a link's
// children are not resolved.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	// Error injection
	errorPaths map[string]error
}

// fileNode represents a file, directory, or symlink in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates a new in-memory filesystem with an empty root.
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		errorPaths: make(map[string]error),
	}
}

// WithError configures the filesystem to return err for any operation on
// path.
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[m.normalizePath(path)] = err
	return m
}

// normalizePath converts a path to absolute, /-rooted form
func (m *MemoryFS) normalizePath(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

// getNode retrieves the node at path without following symlinks
func (m *MemoryFS) getNode(path string) (*fileNode, error) {
	path = m.normalizePath(path)

	if err, ok := m.errorPaths[path]; ok {
		return nil, err
	}

	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	return node, nil
}

// resolveLink follows a symlink one level, relative targets resolving
// against the link's directory. A missing target surfaces as not-exist,
// the way a dangling link does.
func (m *MemoryFS) resolveLink(path string, node *fileNode) (*fileNode, error) {
	target := node.linkDest
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(m.normalizePath(path)), target)
	}
	return m.getNode(target)
}

// getParentAndName splits a path into its parent directory node and base
// name
func (m *MemoryFS) getParentAndName(path string) (*fileNode, string, error) {
	path = m.normalizePath(path)

	parent, err := m.getNode(filepath.Dir(path))
	if err != nil {
		return nil, "", err
	}
	if !parent.isDir {
		return nil, "", &fs.PathError{Op: "open", Path: filepath.Dir(path), Err: errors.New("not a directory")}
	}

	return parent, filepath.Base(path), nil
}

// Stat returns file info, following symlinks.
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	if node.isLink {
		if node, err = m.resolveLink(name, node); err != nil {
			return nil, err
		}
	}

	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Lstat returns file info without following symlinks.
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// ReadFile reads the entire file content, following symlinks.
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	if node.isLink {
		if node, err = m.resolveLink(name, node); err != nil {
			return nil, err
		}
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	// Return a copy to prevent mutation
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating or truncating it. The parent
// directory must already exist, matching os.WriteFile.
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalizePath(name)
	if err, ok := m.errorPaths[path]; ok {
		return err
	}

	parent, filename, err := m.getParentAndName(path)
	if err != nil {
		return err
	}
	if existing, ok := parent.children[filename]; ok && existing.isDir {
		return &fs.PathError{Op: "open", Path: name, Err: errors.New("is a directory")}
	}

	node := &fileNode{
		name:    filename,
		mode:    perm,
		modTime: time.Now(),
		content: make([]byte, len(data)),
	}
	copy(node.content, data)

	parent.children[filename] = node
	m.files[path] = node

	return nil
}

// MkdirAll creates a directory and all necessary parents.
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mkdirAll(path, perm)
}

// mkdirAll is the internal implementation without locking
func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = m.normalizePath(path)

	if node, err := m.getNode(path); err == nil {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("file exists")}
		}
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	parts := strings.Split(path, "/")
	current := "/"
	currentNode := m.files["/"]

	for _, part := range parts {
		if part == "" {
			continue
		}

		next := filepath.Join(current, part)

		if child, exists := currentNode.children[part]; exists {
			if !child.isDir {
				return &fs.PathError{Op: "mkdir", Path: next, Err: errors.New("not a directory")}
			}
			currentNode = child
			current = next
			continue
		}

		newDir := &fileNode{
			name:     part,
			mode:     perm | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}

		currentNode.children[part] = newDir
		m.files[next] = newDir

		currentNode = newDir
		current = next
	}

	return nil
}

// ReadDir reads a directory and returns its entries sorted by name, the
// way os.ReadDir does. A symlink to a directory lists like the directory
// itself.
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	if node.isLink {
		if node, err = m.resolveLink(name, node); err != nil {
			return nil, err
		}
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, &dirEntry{
			name: childName,
			info: &fileInfo{node: child, name: childName},
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

// RemoveAll removes a path and any children it contains.
func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = m.normalizePath(path)
	if err, ok := m.errorPaths[path]; ok {
		return err
	}

	toRemove := []string{}
	for p := range m.files {
		if p == path || strings.HasPrefix(p, path+"/") {
			toRemove = append(toRemove, p)
		}
	}

	for _, p := range toRemove {
		delete(m.files, p)

		if dir := filepath.Dir(p); dir != p {
			if parent, ok := m.files[dir]; ok && parent.isDir {
				delete(parent.children, filepath.Base(p))
			}
		}
	}

	return nil
}

// Symlink records a symbolic link node. It is a test helper rather than
// part of types.FS; generation itself never creates links.
func (m *MemoryFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	linkPath := m.normalizePath(link)

	if _, err := m.getNode(linkPath); err == nil {
		return &fs.PathError{Op: "symlink", Path: link, Err: os.ErrExist}
	}

	parent, filename, err := m.getParentAndName(linkPath)
	if err != nil {
		return err
	}

	node := &fileNode{
		name:     filename,
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}

	parent.children[filename] = node
	m.files[linkPath] = node

	return nil
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return fi.node }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	name string
	info os.FileInfo
}

func (de *dirEntry) Name() string               { return de.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
