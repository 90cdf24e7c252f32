package backup

import (
	"path/filepath"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// maxCopyDepth bounds recursion through symlinked directories that loop
// back onto an ancestor.
const maxCopyDepth = 32

// copyDereferenced copies src to dst following symlinks, so dst receives
// real content. Directories are copied recursively.
func copyDereferenced(fsys types.FS, src, dst string) error {
	return copyPath(fsys, src, dst, 0)
}

func copyPath(fsys types.FS, src, dst string, depth int) error {
	if depth > maxCopyDepth {
		return errors.Newf(errors.ErrBackupCopy, "directory nesting too deep at %s", src)
	}

	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		data, err := fsys.ReadFile(src)
		if err != nil {
			return err
		}
		if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return fsys.WriteFile(dst, data, info.Mode().Perm())
	}

	if err := fsys.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
		return err
	}
	entries, err := fsys.ReadDir(src)
	if err != nil {
		return err
	}

	// Keep going past failing entries and report the first one.
	var firstErr error
	for _, entry := range entries {
		err := copyPath(fsys, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()), depth+1)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
