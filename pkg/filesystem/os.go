package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// osFS is types.FS on the real filesystem. Calls that change the home
// directory are logged so the state log records every removal and link.
type osFS struct {
	logger zerolog.Logger
}

// NewOS returns the OS-backed filesystem.
func NewOS() types.FS {
	return &osFS{logger: logging.GetLogger("filesystem")}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (o *osFS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (o *osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (o *osFS) Readlink(name string) (string, error) { return os.Readlink(name) }

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return o.logged("write", name, os.WriteFile(name, data, perm))
}

func (o *osFS) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(name, mode)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Symlink records target verbatim; relative targets stay relative.
func (o *osFS) Symlink(target, link string) error {
	err := os.Symlink(target, link)
	if err == nil {
		o.logger.Debug().Str("link", link).Str("target", target).Msg("Created symlink")
	}
	return err
}

func (o *osFS) Remove(name string) error {
	return o.logged("remove", name, os.Remove(name))
}

func (o *osFS) RemoveAll(path string) error {
	return o.logged("remove-all", path, os.RemoveAll(path))
}

func (o *osFS) logged(op, path string, err error) error {
	event := o.logger.Debug()
	if err != nil {
		event = event.Err(err)
	}
	event.Str("op", op).Str("path", path).Msg("Filesystem change")
	return err
}
