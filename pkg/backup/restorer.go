package backup

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// RestoredItem is the outcome for one path during restore.
type RestoredItem struct {
	// Path is the destination under home.
	Path string

	// Link is set when a symlink was recreated instead of content copied.
	Link string

	Err error
}

// RestoreResult collects the per-path outcomes of a restore.
type RestoreResult struct {
	Set   Set
	Items []RestoredItem
}

// Failed returns the items that could not be restored.
func (r *RestoreResult) Failed() []RestoredItem {
	var failed []RestoredItem
	for _, item := range r.Items {
		if item.Err != nil {
			failed = append(failed, item)
		}
	}
	return failed
}

// RestorerOption configures a Restorer.
type RestorerOption func(*Restorer)

// WithRestoreRoot sets the managed root restore must never write into.
// Without it the root recorded in the set's manifest is used.
func WithRestoreRoot(root string) RestorerOption {
	return func(r *Restorer) { r.managedRoot = root }
}

// Restorer copies backup sets back into home.
type Restorer struct {
	fs          types.FS
	home        string
	managedRoot string
	logger      zerolog.Logger
}

// NewRestorer creates a Restorer for home.
func NewRestorer(fsys types.FS, home string, opts ...RestorerOption) *Restorer {
	r := &Restorer{
		fs:     fsys,
		home:   home,
		logger: logging.GetLogger("backup.restorer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Restore puts every item of set back at its original location. Items are
// independent: one failure does not stop the others. The returned error is
// non-nil only when the set itself cannot be read.
func (r *Restorer) Restore(set Set) (*RestoreResult, error) {
	done := logging.LogOperationStart(r.logger, "restore")
	defer done()

	if _, err := r.fs.Stat(set.Path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRestore, "backup %s is not readable", set.Name)
	}

	manifest, err := readManifest(r.fs, set.Path)
	if err != nil {
		return nil, err
	}

	root := r.managedRoot
	if root == "" && manifest != nil {
		root = manifest.ManagedRoot
	}

	result := &RestoreResult{Set: set}
	if manifest != nil {
		for _, item := range manifest.Items {
			result.Items = append(result.Items, r.restoreItem(set, root, item))
		}
	} else {
		r.logger.Info().Str("set", set.Name).Msg("Backup has no manifest, restoring files by copy")
		result.Items = r.restoreTree(set, root, set.Path)
	}

	r.logger.Info().
		Str("set", set.Name).
		Int("items", len(result.Items)).
		Int("failed", len(result.Failed())).
		Msg("Restore finished")
	return result, nil
}

func (r *Restorer) restoreItem(set Set, root string, item ManifestItem) RestoredItem {
	dest := filepath.Join(r.home, item.Path)
	out := RestoredItem{Path: dest}

	if err := r.checkParents(root, dest); err != nil {
		out.Err = err
		r.logger.Warn().Err(err).Str("path", dest).Msg("Restore refused for item")
		return out
	}
	if err := r.clearLink(dest); err != nil {
		out.Err = err
		return out
	}

	switch {
	case item.Kind == types.ConflictForeignLink || item.Kind == types.ConflictDanglingDir:
		out.Link = item.LinkTarget
		if err := r.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			out.Err = errors.Wrapf(err, errors.ErrRestore, "failed to create parent of %s", dest)
			return out
		}
		if err := r.fs.Symlink(item.LinkTarget, dest); err != nil {
			out.Err = errors.Wrapf(err, errors.ErrRestore, "failed to recreate link %s", dest)
		}
	case item.Copied:
		src := filepath.Join(set.Path, item.Path)
		if err := copyDereferenced(r.fs, src, dest); err != nil {
			out.Err = errors.Wrapf(err, errors.ErrRestore, "failed to restore %s", dest)
		}
	default:
		out.Err = errors.Newf(errors.ErrRestore, "backup holds no content for %s", item.Path)
	}

	if out.Err != nil {
		r.logger.Warn().Err(out.Err).Str("path", dest).Msg("Restore failed for item")
	}
	return out
}

// restoreTree copies every file under dir back to home, mirroring paths.
func (r *Restorer) restoreTree(set Set, root, dir string) []RestoredItem {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return []RestoredItem{{Path: dir, Err: errors.Wrapf(err, errors.ErrRestore, "failed to read %s", dir)}}
	}

	var items []RestoredItem
	for _, entry := range entries {
		src := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			items = append(items, r.restoreTree(set, root, src)...)
			continue
		}
		if src == filepath.Join(set.Path, paths.BackupManifestFile) {
			continue
		}

		rel, err := filepath.Rel(set.Path, src)
		if err != nil {
			items = append(items, RestoredItem{Path: src, Err: err})
			continue
		}
		dest := filepath.Join(r.home, rel)
		item := RestoredItem{Path: dest}
		if err := r.checkParents(root, dest); err != nil {
			item.Err = err
		} else if err := r.clearLink(dest); err != nil {
			item.Err = err
		} else if err := copyDereferenced(r.fs, src, dest); err != nil {
			item.Err = errors.Wrapf(err, errors.ErrRestore, "failed to restore %s", dest)
		}
		items = append(items, item)
	}
	return items
}

// checkParents fails when a directory link between home and dest resolves
// into root. Writing there would overwrite managed sources, and removing
// the link would break every other file linked through it.
func (r *Restorer) checkParents(root, dest string) error {
	if root == "" {
		return nil
	}
	link, found, err := conflicts.NearestLink(r.fs, r.home, filepath.Dir(dest))
	if err != nil {
		return errors.Wrapf(err, errors.ErrRestore, "cannot check the parents of %s", dest)
	}
	if !found || !link.IntoRoot(root) {
		return nil
	}
	return errors.Newf(errors.ErrRestore,
		"cannot restore %s: %s links into the managed root %s", dest, link.Path, root).
		WithDetail("path", dest).
		WithDetail("link", link.Path).
		WithRemediation("rm " + link.Path)
}

// clearLink unlinks dest when it is a symlink so restored content is never
// written through a link into the managed root.
func (r *Restorer) clearLink(dest string) error {
	info, err := r.fs.Lstat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrRestore, "cannot inspect %s", dest)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return nil
	}
	if err := r.fs.Remove(dest); err != nil {
		return errors.Wrapf(err, errors.ErrRestore, "failed to remove link %s before restore", dest)
	}
	return nil
}

// Delete removes a backup set. Only directories named like backup sets are
// accepted.
func (r *Restorer) Delete(set Set) error {
	if _, ok := paths.ParseBackupDirName(filepath.Base(set.Path)); !ok {
		return errors.Newf(errors.ErrInvalidInput, "refusing to delete %s: not a backup directory", set.Path)
	}
	if err := r.fs.RemoveAll(set.Path); err != nil {
		return errors.Wrapf(err, errors.ErrRemoval, "failed to delete backup %s", set.Name).
			WithRemediation("rm -rf " + set.Path)
	}
	r.logger.Info().Str("set", set.Name).Msg("Deleted backup")
	return nil
}
