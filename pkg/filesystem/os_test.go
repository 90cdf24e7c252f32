package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fs.Chmod(testFile, 0600))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "sub")))
	_, err = fs.Stat(subDir)
	assert.True(t, os.IsNotExist(err))
}

func TestOSFS_Symlinks(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "missing")
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.Symlink(target, link))

	got, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	// Lstat sees the dangling link itself, Stat follows it and fails
	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	_, err = fs.Stat(link)
	assert.True(t, os.IsNotExist(err))
}
