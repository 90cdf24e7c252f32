package linker

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// linkOp is one symlink to create: Dest -> Source.
type linkOp struct {
	Source string
	Dest   string
}

// NativeLinker links groups with direct filesystem calls. Links are
// absolute. A declared directory that is absent under home is linked as a
// whole, like stow folding a tree.
type NativeLinker struct {
	fs         types.FS
	paths      *paths.Paths
	classifier *conflicts.Classifier
	logger     zerolog.Logger
}

// NewNativeLinker creates a NativeLinker.
func NewNativeLinker(fsys types.FS, p *paths.Paths, classifier *conflicts.Classifier) *NativeLinker {
	return &NativeLinker{
		fs:         fsys,
		paths:      p,
		classifier: classifier,
		logger:     logging.GetLogger("linker.native"),
	}
}

func (n *NativeLinker) Name() string { return NameNative }

func (n *NativeLinker) Available() bool { return true }

// Apply checks every destination first and creates links only when none
// of them is occupied by something else.
func (n *NativeLinker) Apply(ctx context.Context, group types.LinkGroup) error {
	ops, err := n.plan(group)
	if err != nil {
		return err
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := n.fs.MkdirAll(filepath.Dir(op.Dest), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", op.Dest)
		}
		if err := n.fs.Symlink(op.Source, op.Dest); err != nil {
			return errors.Wrapf(err, errors.ErrLinkGroup, "failed to link %s", op.Dest).
				WithDetail("group", group.Name)
		}
		n.logger.Debug().Str("source", op.Source).Str("dest", op.Dest).Msg("Linked")
	}

	n.logger.Info().Str("group", group.Name).Int("links", len(ops)).Msg("Group linked")
	return nil
}

// plan computes the links needed for group. Destinations that already link
// to their source are left alone; anything else in the way is a conflict.
func (n *NativeLinker) plan(group types.LinkGroup) ([]linkOp, error) {
	pkgDir := n.paths.PackagePath(group.Package)

	var (
		ops      []linkOp
		occupied []string
		covered  []string
	)

	check := func(rel string, isDir bool) {
		rel = filepath.Clean(rel)
		dest := n.paths.HomePath(rel)
		if underAny(covered, dest) {
			return
		}

		source := filepath.Join(pkgDir, rel)
		info, err := n.fs.Stat(source)
		if err != nil || info.IsDir() != isDir {
			n.logger.Debug().Str("source", source).Msg("Not in package, skipping")
			return
		}

		existing, err := n.fs.Lstat(dest)
		switch {
		case os.IsNotExist(err):
			ops = append(ops, linkOp{Source: source, Dest: dest})
			if isDir {
				covered = append(covered, dest)
			}
		case err != nil:
			occupied = append(occupied, rel+" (cannot inspect)")
		case existing.Mode()&os.ModeSymlink != 0:
			target, rerr := n.fs.Readlink(dest)
			if rerr == nil && sameFile(dest, target, source) {
				if isDir {
					covered = append(covered, dest)
				}
				return
			}
			occupied = append(occupied, rel+" (symlink)")
		case isDir && existing.IsDir():
			// Real directory: its files are linked one by one.
		default:
			occupied = append(occupied, rel)
		}
	}

	for _, d := range group.Directories {
		check(d, true)
	}
	for _, f := range group.Files {
		check(f, false)
	}

	if len(occupied) > 0 {
		return nil, errors.Newf(errors.ErrLinkGroup,
			"group %s: existing target is not owned by dotstow: %s", group.Name, strings.Join(occupied, ", ")).
			WithDetail("group", group.Name).
			WithDetail("conflicts", occupied)
	}
	return ops, nil
}

// Remove deletes the group's targets that are symlinks into the managed
// root. Anything else is left in place.
func (n *NativeLinker) Remove(ctx context.Context, group types.LinkGroup) error {
	var errs []error
	for _, rel := range append(append([]string{}, group.Directories...), group.Files...) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := n.removeManaged(n.paths.HomePath(filepath.Clean(rel))); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Wrapf(stderrors.Join(errs...), errors.ErrUnlinkGroup, "failed to unlink group %s", group.Name).
			WithDetail("group", group.Name)
	}
	return nil
}

func (n *NativeLinker) removeManaged(path string) error {
	info, err := n.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		n.logger.Debug().Str("path", path).Msg("Not a symlink, leaving in place")
		return nil
	}

	target, err := n.fs.Readlink(path)
	if err != nil {
		return err
	}
	if !n.classifier.IsManaged(path, target) {
		n.logger.Info().Str("path", path).Str("target", target).Msg("Foreign symlink, leaving in place")
		return nil
	}

	if err := n.fs.Remove(path); err != nil {
		return err
	}
	n.logger.Debug().Str("path", path).Msg("Unlinked")
	return nil
}

// sameFile reports whether a link at linkPath with target linkTarget points
// at source, resolving a relative target against the link's directory.
func sameFile(linkPath, linkTarget, source string) bool {
	if !filepath.IsAbs(linkTarget) {
		linkTarget = filepath.Join(filepath.Dir(linkPath), linkTarget)
	}
	return filepath.Clean(linkTarget) == filepath.Clean(source)
}

func underAny(dirs []string, path string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
