// pkg/testutil/memoryfs_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test MemoryFS implementation

package testutil

import (
	"errors"
	"io/fs"
	"os"
	"testing"
)

func TestMemoryFSWriteReadRoundTrip(t *testing.T) {
	mfs := NewMemoryFS()

	if err := mfs.MkdirAll("/project", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := mfs.WriteFile("/project/readme.txt", []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	content, err := mfs.ReadFile("/project/readme.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("expected 'hello', got %q", content)
	}

	// Mutating the returned slice must not change stored content
	content[0] = 'X'
	again, err := mfs.ReadFile("/project/readme.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(again) != "hello" {
		t.Errorf("stored content mutated: %q", again)
	}
}

func TestMemoryFSWriteFileRequiresParent(t *testing.T) {
	mfs := NewMemoryFS()

	err := mfs.WriteFile("/missing/file.txt", []byte("data"), 0644)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMemoryFSWriteFileOverDirectory(t *testing.T) {
	mfs := NewMemoryFS()

	if err := mfs.MkdirAll("/project/src", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	if err := mfs.WriteFile("/project/src", []byte("data"), 0644); err == nil {
		t.Error("expected error writing over a directory")
	}
}

func TestMemoryFSMkdirAll(t *testing.T) {
	mfs := NewMemoryFS()

	if err := mfs.MkdirAll("/a/b/c", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	for _, path := range []string{"/a", "/a/b", "/a/b/c"} {
		info, err := mfs.Stat(path)
		if err != nil {
			t.Fatalf("Stat %s failed: %v", path, err)
		}
		if !info.IsDir() {
			t.Errorf("%s should be a directory", path)
		}
	}

	// Existing directory is fine, existing file is not
	if err := mfs.MkdirAll("/a/b", 0755); err != nil {
		t.Errorf("MkdirAll on existing dir failed: %v", err)
	}
	if err := mfs.WriteFile("/a/file", nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mfs.MkdirAll("/a/file", 0755); err == nil {
		t.Error("expected error creating dir over file")
	}
	if err := mfs.MkdirAll("/a/file/sub", 0755); err == nil {
		t.Error("expected error creating dir under file")
	}
}

func TestMemoryFSReadDirSorted(t *testing.T) {
	mfs := NewMemoryFS()

	if err := mfs.MkdirAll("/dir/zeta", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := mfs.WriteFile("/dir/beta.txt", nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mfs.WriteFile("/dir/alpha.txt", nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	entries, err := mfs.ReadDir("/dir")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"alpha.txt", "beta.txt", "zeta"}
	for i, name := range want {
		if entries[i].Name() != name {
			t.Errorf("entry %d: expected %s, got %s", i, name, entries[i].Name())
		}
	}
	if !entries[2].IsDir() {
		t.Error("zeta should report as directory")
	}

	if _, err := mfs.ReadDir("/dir/alpha.txt"); err == nil {
		t.Error("expected error reading dir on a file")
	}
	if _, err := mfs.ReadDir("/nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMemoryFSSymlinks(t *testing.T) {
	mfs := NewMemoryFS()

	if err := mfs.MkdirAll("/target", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := mfs.WriteFile("/target/file.txt", []byte("via link"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mfs.Symlink("/target", "/link"); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	// Stat follows the link, Lstat does not
	info, err := mfs.Stat("/link")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("Stat through link should report directory")
	}

	linfo, err := mfs.Lstat("/link")
	if err != nil {
		t.Fatalf("Lstat failed: %v", err)
	}
	if linfo.Mode()&os.ModeSymlink == 0 {
		t.Error("Lstat should report symlink mode")
	}

	// Relative targets resolve against the link's directory
	if err := mfs.Symlink("target", "/rel"); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}
	rinfo, err := mfs.Stat("/rel")
	if err != nil {
		t.Fatalf("Stat through relative link failed: %v", err)
	}
	if !rinfo.IsDir() {
		t.Error("relative link should resolve to directory")
	}
}

func TestMemoryFSReadDirThroughSymlink(t *testing.T) {
	mfs := NewMemoryFS()

	if err := mfs.MkdirAll("/target", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := mfs.WriteFile("/target/file.txt", nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mfs.Symlink("/target", "/link"); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	entries, err := mfs.ReadDir("/link")
	if err != nil {
		t.Fatalf("ReadDir through link failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "file.txt" {
		t.Errorf("unexpected entries through link: %v", entries)
	}

	// A link to a file still refuses to list
	if err := mfs.Symlink("/target/file.txt", "/filelink"); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}
	if _, err := mfs.ReadDir("/filelink"); err == nil {
		t.Error("expected error reading dir through link to a file")
	}

	// A dangling link surfaces not-exist
	if err := mfs.Symlink("/nowhere", "/gone"); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}
	if _, err := mfs.ReadDir("/gone"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMemoryFSDanglingSymlink(t *testing.T) {
	mfs := NewMemoryFS()

	if err := mfs.Symlink("/nowhere", "/dangling"); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	if _, err := mfs.Lstat("/dangling"); err != nil {
		t.Errorf("Lstat on dangling link failed: %v", err)
	}
	if _, err := mfs.Stat("/dangling"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist from Stat, got %v", err)
	}
}

func TestMemoryFSRemoveAll(t *testing.T) {
	mfs := NewMemoryFS()

	if err := mfs.MkdirAll("/project/sub", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := mfs.WriteFile("/project/sub/file.txt", nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mfs.WriteFile("/keeper.txt", nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := mfs.RemoveAll("/project"); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}

	if _, err := mfs.Stat("/project"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected /project gone, got %v", err)
	}
	if _, err := mfs.Stat("/project/sub/file.txt"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected child gone, got %v", err)
	}
	if _, err := mfs.Stat("/keeper.txt"); err != nil {
		t.Errorf("sibling should survive: %v", err)
	}

	entries, err := mfs.ReadDir("/")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "keeper.txt" {
		t.Errorf("unexpected root entries: %v", entries)
	}
}

func TestMemoryFSErrorInjection(t *testing.T) {
	mfs := NewMemoryFS().WithError("/secret.txt", os.ErrPermission)

	if _, err := mfs.ReadFile("/secret.txt"); !errors.Is(err, os.ErrPermission) {
		t.Errorf("expected permission error from ReadFile, got %v", err)
	}
	if _, err := mfs.Stat("/secret.txt"); !errors.Is(err, os.ErrPermission) {
		t.Errorf("expected permission error from Stat, got %v", err)
	}
	if err := mfs.WriteFile("/secret.txt", []byte("x"), 0644); !errors.Is(err, os.ErrPermission) {
		t.Errorf("expected permission error from WriteFile, got %v", err)
	}

	mfs.WithError("/locked", os.ErrPermission)
	if _, err := mfs.ReadDir("/locked"); !errors.Is(err, os.ErrPermission) {
		t.Errorf("expected permission error from ReadDir, got %v", err)
	}
}

func TestMemoryFSRelativePaths(t *testing.T) {
	mfs := NewMemoryFS()

	if err := mfs.MkdirAll("project", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := mfs.WriteFile("project/file.txt", []byte("rooted"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Relative paths are rooted at /
	content, err := mfs.ReadFile("/project/file.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "rooted" {
		t.Errorf("expected 'rooted', got %q", content)
	}
}
