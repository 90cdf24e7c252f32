// Package probe inspects a filesystem path and classifies it without
// following a final symlink.
package probe

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// Prober classifies paths through an FS.
type Prober struct {
	fs types.FS
}

// New creates a Prober over fsys.
func New(fsys types.FS) *Prober {
	return &Prober{fs: fsys}
}

// Probe reports what sits at path. It has no side effects. The only error
// is a PROBE error when the path cannot be inspected (permission denied or
// any other failure besides non-existence).
func (p *Prober) Probe(path string) (types.ProbeResult, error) {
	result := types.ProbeResult{Path: path, Kind: types.KindAbsent}

	info, err := p.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, errors.Wrapf(err, errors.ErrProbe, "cannot inspect %s", path).
			WithDetail("path", path)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		result.Kind = types.KindSymlink
		target, err := p.fs.Readlink(path)
		if err != nil {
			return result, errors.Wrapf(err, errors.ErrProbe, "cannot read link %s", path).
				WithDetail("path", path)
		}
		result.LinkTarget = target

		// Stat follows the link; a missing target means the link dangles.
		if targetInfo, err := p.fs.Stat(path); err == nil {
			result.TargetExists = true
			result.TargetIsDir = targetInfo.IsDir()
		}
	case info.IsDir():
		result.Kind = types.KindDirectory
	default:
		result.Kind = types.KindRegularFile
	}

	return result, nil
}
