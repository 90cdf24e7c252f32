package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for the managed root
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for dotstow-specific files
	AppDirName = "dotstow"

	// ConfigFileName is the user configuration file inside the XDG config dir
	ConfigFileName = "config.toml"

	// RootConfigFile is the configuration file read from the managed root
	RootConfigFile = ".dotstow.toml"

	// FontsDirName is the per-user fonts directory under XDG data home
	FontsDirName = "fonts"
)

// Options configures path resolution. Empty values fall back to the
// environment.
type Options struct {
	ManagedRoot string
	Home        string
}

// Paths holds every resolved location dotstow works with.
type Paths struct {
	managedRoot  string
	home         string
	usedFallback bool

	xdgConfig string
	xdgState  string
	xdgData   string
}

// New resolves paths. The managed root is taken from opts, then
// DOTFILES_ROOT, then the enclosing git repository, then the current
// directory (reported through UsedFallback).
func New(opts Options) (*Paths, error) {
	p := &Paths{}

	if opts.ManagedRoot == "" {
		root, usedFallback, err := findManagedRoot()
		if err != nil {
			return nil, err
		}
		p.managedRoot = root
		p.usedFallback = usedFallback
	} else {
		p.managedRoot = ExpandHome(opts.ManagedRoot)
	}

	absRoot, err := filepath.Abs(p.managedRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for managed root")
	}
	p.managedRoot = filepath.Clean(absRoot)

	home := opts.Home
	if home == "" {
		home, err = GetHomeDirectory()
		if err != nil {
			return nil, err
		}
	}
	absHome, err := filepath.Abs(ExpandHome(home))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for home")
	}
	p.home = filepath.Clean(absHome)

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs reads XDG locations, picking up environment changes made
// after process start (tests rely on this).
func (p *Paths) setupXDGDirs() {
	xdg.Reload()
	p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	p.xdgData = xdg.DataHome
}

// findManagedRoot determines the managed root using the following priority:
// 1. DOTFILES_ROOT environment variable (if set)
// 2. Git repository root (found via 'git rev-parse --show-toplevel')
// 3. Current working directory (fallback)
func findManagedRoot() (string, bool, error) {
	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return ExpandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// GetHomeDirectory returns HOME, falling back to the OS user lookup.
func GetHomeDirectory() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrNotFound, "failed to determine home directory")
	}
	return home, nil
}

// ManagedRoot returns the directory the intended symlinks originate from
func (p *Paths) ManagedRoot() string {
	return p.managedRoot
}

// Home returns the target root symlinks are created in
func (p *Paths) Home() string {
	return p.home
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigDir returns the XDG config directory for dotstow
func (p *Paths) ConfigDir() string {
	return p.xdgConfig
}

// UserConfigFile returns the default user configuration file. It does not
// need a resolved managed root.
func UserConfigFile() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// ConfigFilePath returns the user configuration file path
func (p *Paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// RootConfigPath returns the configuration file inside the managed root
func (p *Paths) RootConfigPath() string {
	return RootConfigPathFor(p.managedRoot)
}

// RootConfigPathFor returns the configuration file inside root.
func RootConfigPathFor(root string) string {
	return filepath.Join(root, RootConfigFile)
}

// StateDir returns the XDG state directory for dotstow
func (p *Paths) StateDir() string {
	return p.xdgState
}

// FontsDir returns the per-user font directory
func (p *Paths) FontsDir() string {
	return filepath.Join(p.xdgData, FontsDirName)
}

// PackagePath returns the directory of a link group's package in the managed root
func (p *Paths) PackagePath(pkg string) string {
	return filepath.Join(p.managedRoot, pkg)
}

// HomePath joins a home-relative path onto the target root
func (p *Paths) HomePath(rel string) string {
	return filepath.Join(p.home, rel)
}

// ManagedTargets expands groups into absolute targets. Order follows the
// group order; within a group directories come before files so a folded
// directory link is classified before the files beneath it.
func (p *Paths) ManagedTargets(groups []types.LinkGroup) []types.ManagedTarget {
	var targets []types.ManagedTarget
	for _, g := range groups {
		for _, d := range g.Directories {
			targets = append(targets, p.managedTarget(g, d, true))
		}
		for _, f := range g.Files {
			targets = append(targets, p.managedTarget(g, f, false))
		}
	}
	return targets
}

func (p *Paths) managedTarget(g types.LinkGroup, rel string, isDir bool) types.ManagedTarget {
	rel = filepath.Clean(rel)
	return types.ManagedTarget{
		Path:       p.HomePath(rel),
		RelPath:    rel,
		Group:      g.Name,
		SourceRoot: p.managedRoot,
		IsDir:      isDir,
	}
}
