// pkg/testutil/environment.go
// DEPENDENCIES: filesystem, paths
// PURPOSE: Orchestrate isolated home + managed root test environments

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstow/pkg/filesystem"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// Core paths
	ManagedRoot string
	HomeDir     string

	// Core dependencies
	FS    types.FS
	Paths *paths.Paths

	t       *testing.T
	tempDir string
}

// NewTestEnvironment creates a temp HOME and a managed root beside it and
// points HOME, DOTFILES_ROOT and the XDG variables at them.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	// Resolve so paths compare equal to what the OS reports back
	if resolved, err := filepath.EvalSymlinks(tempDir); err == nil {
		tempDir = resolved
	}

	env := &TestEnvironment{
		t:           t,
		tempDir:     tempDir,
		ManagedRoot: filepath.Join(tempDir, "dotfiles"),
		HomeDir:     filepath.Join(tempDir, "home"),
		FS:          filesystem.NewOS(),
	}

	for _, dir := range []string{env.ManagedRoot, env.HomeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv(paths.EnvDotfilesRoot, env.ManagedRoot)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(env.HomeDir, ".local", "share"))

	p, err := paths.New(paths.Options{ManagedRoot: env.ManagedRoot, Home: env.HomeDir})
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p

	return env
}

// TempDir returns the directory holding both home and the managed root.
func (env *TestEnvironment) TempDir() string {
	return env.tempDir
}

// HomePath returns an absolute path under the test home.
func (env *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(env.HomeDir, rel)
}

// RootPath returns an absolute path under the managed root.
func (env *TestEnvironment) RootPath(rel string) string {
	return filepath.Join(env.ManagedRoot, rel)
}

// WriteHomeFile writes a file under home, creating parent directories.
func (env *TestEnvironment) WriteHomeFile(rel, content string) string {
	env.t.Helper()
	return env.writeFile(env.HomePath(rel), content)
}

// WriteRootFile writes a file under the managed root, creating parent directories.
func (env *TestEnvironment) WriteRootFile(rel, content string) string {
	env.t.Helper()
	return env.writeFile(env.RootPath(rel), content)
}

// SymlinkHome creates a symlink at home/rel pointing to target.
func (env *TestEnvironment) SymlinkHome(rel, target string) string {
	env.t.Helper()
	link := env.HomePath(rel)
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		env.t.Fatalf("Failed to create parent of %s: %v", link, err)
	}
	if err := os.Symlink(target, link); err != nil {
		env.t.Fatalf("Failed to create symlink %s: %v", link, err)
	}
	return link
}

// MkdirHome creates a directory under home.
func (env *TestEnvironment) MkdirHome(rel string) string {
	env.t.Helper()
	dir := env.HomePath(rel)
	if err := os.MkdirAll(dir, 0755); err != nil {
		env.t.Fatalf("Failed to create %s: %v", dir, err)
	}
	return dir
}

// SetupStandardPackages populates the managed root with the packages used
// by StandardGroups.
func (env *TestEnvironment) SetupStandardPackages() {
	env.t.Helper()
	env.WriteRootFile("zsh/.zshrc", "# managed zshrc\n")
	env.WriteRootFile("zsh/.zshenv", "# managed zshenv\n")
	env.WriteRootFile("zsh/.zprofile", "# managed zprofile\n")
	env.WriteRootFile("starship/.config/starship.toml", "format = \"$all\"\n")
	env.WriteRootFile("alacritty/.config/alacritty/alacritty.toml", "[font]\nsize = 11\n")
}

func (env *TestEnvironment) writeFile(path, content string) string {
	env.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// StandardGroups returns the shell, prompt and terminal groups matching
// SetupStandardPackages.
func StandardGroups() []types.LinkGroup {
	return []types.LinkGroup{
		{
			Name:    "shell",
			Package: "zsh",
			Files:   []string{".zshrc", ".zshenv", ".zprofile"},
		},
		{
			Name:    "prompt",
			Package: "starship",
			Files:   []string{".config/starship.toml"},
		},
		{
			Name:        "terminal",
			Package:     "alacritty",
			Files:       []string{".config/alacritty/alacritty.yml", ".config/alacritty/alacritty.toml"},
			Directories: []string{".config/alacritty"},
			Optional:    true,
		},
	}
}
