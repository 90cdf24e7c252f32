package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dotstow operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat must not follow a final symlink; the probe relies on it.
	Lstat(name string) (fs.FileInfo, error)
}

// Decision is the typed answer to a confirmation prompt.
type Decision int

const (
	No Decision = iota
	Yes
)

func (d Decision) String() string {
	if d == Yes {
		return "yes"
	}
	return "no"
}

// Confirmer asks the user a yes/no question. Workflows receive one as a
// dependency so they can run without a terminal.
type Confirmer interface {
	Confirm(prompt string) (Decision, error)
}

// Prompter asks the user for a free-form line of input.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) (Decision, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) (Decision, error) {
	return f(prompt)
}
