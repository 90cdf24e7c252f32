package conflicts

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// Link is a symlink found on a path, with its raw target.
type Link struct {
	Path   string
	Target string
}

// NearestLink walks from path up towards home, path included and home
// excluded, and returns the first symlink found. Paths outside home are
// never inspected.
func NearestLink(fsys types.FS, home, path string) (Link, bool, error) {
	home = filepath.Clean(home)
	for p := filepath.Clean(path); p != home && strings.HasPrefix(p, home+string(filepath.Separator)); p = filepath.Dir(p) {
		info, err := fsys.Lstat(p)
		if err != nil {
			// A regular file higher up shows as ENOTDIR below it.
			if os.IsNotExist(err) || stderrors.Is(err, syscall.ENOTDIR) {
				continue
			}
			return Link{}, false, errors.Wrapf(err, errors.ErrProbe, "cannot inspect %s", p).
				WithDetail("path", p)
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			continue
		}
		target, err := fsys.Readlink(p)
		if err != nil {
			return Link{}, false, errors.Wrapf(err, errors.ErrProbe, "cannot read link %s", p).
				WithDetail("path", p)
		}
		return Link{Path: p, Target: target}, true, nil
	}
	return Link{}, false, nil
}

// IntoRoot reports whether link resolves to a location under root. It
// resolves on disk regardless of the configured containment mode.
func (l Link) IntoRoot(root string) bool {
	return PointsInto(ContainmentPrefix, root, l.Path, l.Target)
}
