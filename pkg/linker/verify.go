package linker

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// Verifier checks that a group's targets resolve into the managed root.
type Verifier struct {
	fs         types.FS
	paths      *paths.Paths
	classifier *conflicts.Classifier
}

// NewVerifier creates a Verifier.
func NewVerifier(fsys types.FS, p *paths.Paths, classifier *conflicts.Classifier) *Verifier {
	return &Verifier{fs: fsys, paths: p, classifier: classifier}
}

// Verify returns a LINK_VERIFY error naming every target of group that is
// present in its package but not linked into the managed root. A target
// counts as linked when it, or a directory above it inside home, is a
// managed symlink.
func (v *Verifier) Verify(group types.LinkGroup) error {
	rels := group.Files
	if len(rels) == 0 {
		rels = group.Directories
	}

	var missing []string
	for _, rel := range rels {
		rel = filepath.Clean(rel)
		if _, err := v.fs.Stat(filepath.Join(v.paths.PackagePath(group.Package), rel)); err != nil {
			continue
		}
		if !v.Linked(v.paths.HomePath(rel)) {
			missing = append(missing, rel)
		}
	}

	if len(missing) > 0 {
		return errors.Newf(errors.ErrLinkVerify,
			"group %s: not linked after apply: %s", group.Name, strings.Join(missing, ", ")).
			WithDetail("group", group.Name).
			WithDetail("targets", missing)
	}
	return nil
}

// Linked reports whether path is reached through a managed symlink. The
// nearest symlink on the way up to home decides.
func (v *Verifier) Linked(path string) bool {
	link, found, err := conflicts.NearestLink(v.fs, v.paths.Home(), path)
	if err != nil || !found {
		return false
	}
	return v.classifier.IsManaged(link.Path, link.Target)
}
