package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	// Test that NewOS returns a valid filesystem
	fs := NewOS()
	assert.NotNil(t, fs)

	// Test basic operations
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	// Test WriteFile
	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	// Test Stat
	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	// Test ReadFile
	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	// Test MkdirAll
	nested := filepath.Join(tmpDir, "a", "b", "c")
	err = fs.MkdirAll(nested, 0755)
	require.NoError(t, err)
	info, err = fs.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Test ReadDir
	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Test RemoveAll
	err = fs.RemoveAll(filepath.Join(tmpDir, "a"))
	require.NoError(t, err)
	_, err = fs.Stat(filepath.Join(tmpDir, "a"))
	assert.True(t, os.IsNotExist(err))
}

func TestOSLstat(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "target.txt")
	require.NoError(t, fs.WriteFile(target, []byte("data"), 0644))

	link := filepath.Join(tmpDir, "link.txt")
	require.NoError(t, os.Symlink(target, link))

	// Lstat reports the link itself
	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	// Stat follows it
	info, err = fs.Stat(link)
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink)
}
