package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestEnvironment(t *testing.T) {
	env := NewTestEnvironment(t)

	assert.DirExists(t, env.HomeDir)
	assert.DirExists(t, env.ManagedRoot)
	assert.Equal(t, env.HomeDir, os.Getenv("HOME"))
	assert.Equal(t, env.ManagedRoot, env.Paths.ManagedRoot())
	assert.Equal(t, env.HomeDir, env.Paths.Home())
	assert.Equal(t, filepath.Dir(env.HomeDir), env.TempDir())
}

func TestTestEnvironment_Helpers(t *testing.T) {
	env := NewTestEnvironment(t)
	env.SetupStandardPackages()

	AssertFileContent(t, env.RootPath("zsh/.zshrc"), "# managed zshrc\n")

	file := env.WriteHomeFile(".zshrc", "X")
	AssertFileContent(t, file, "X")

	link := env.SymlinkHome(".config/starship.toml", "/nowhere")
	AssertSymlinkTo(t, link, "/nowhere")

	dir := env.MkdirHome(".config/alacritty")
	assert.DirExists(t, dir)

	AssertNotExists(t, env.HomePath(".zprofile"))
}

func TestFaultFS(t *testing.T) {
	env := NewTestEnvironment(t)
	path := env.WriteHomeFile(".zshrc", "X")

	ffs := NewFaultFS(env.FS).Fail(OpReadFile, path, fs.ErrPermission)

	_, err := ffs.ReadFile(path)
	assert.True(t, errors.Is(err, fs.ErrPermission))

	// Other operations pass through
	info, err := ffs.Lstat(path)
	require.NoError(t, err)
	assert.Equal(t, ".zshrc", info.Name())
	require.NoError(t, ffs.Remove(path))
}

func TestStandardGroups(t *testing.T) {
	groups := StandardGroups()
	require.Len(t, groups, 3)
	assert.Equal(t, "shell", groups[0].Name)
	assert.True(t, groups[2].Optional)
	assert.Equal(t, []string{".config/alacritty"}, groups[2].Directories)
}
