package backup

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// Set is one backup directory under home.
type Set struct {
	Name      string
	Path      string
	Timestamp time.Time
}

// Item reports what happened to one conflict during backup.
type Item struct {
	Record     types.ConflictRecord
	BackupPath string
	Copied     bool
	CopyErr    error
}

// Result is the outcome of a Backup call.
type Result struct {
	Set   Set
	Items []Item
}

// CopyFailures returns the items whose content could not be saved.
func (r *Result) CopyFailures() []Item {
	var failed []Item
	for _, item := range r.Items {
		if item.CopyErr != nil {
			failed = append(failed, item)
		}
	}
	return failed
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithClock sets the time source used to name backup sets.
func WithClock(now func() time.Time) Option {
	return func(a *Archiver) { a.now = now }
}

// WithManagedRoot records the managed root in manifests.
func WithManagedRoot(root string) Option {
	return func(a *Archiver) { a.managedRoot = root }
}

// Archiver creates backup sets and removes the originals.
type Archiver struct {
	fs          types.FS
	home        string
	managedRoot string
	now         func() time.Time
	logger      zerolog.Logger
}

// NewArchiver creates an Archiver writing sets under home.
func NewArchiver(fsys types.FS, home string, opts ...Option) *Archiver {
	a := &Archiver{
		fs:     fsys,
		home:   home,
		now:    time.Now,
		logger: logging.GetLogger("backup.archiver"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Backup copies every conflicting item into a new set, then removes every
// original. With no records it does nothing and returns nil.
//
// When Backup returns without error none of the record paths exist on
// disk. Copy failures do not stop the run; they are reported in the result
// and logged at error level because the original is gone afterwards.
func (a *Archiver) Backup(records []types.ConflictRecord) (*Result, error) {
	if len(records) == 0 {
		return nil, nil
	}
	done := logging.LogOperationStart(a.logger, "backup")
	defer done()

	// Nothing is copied or created when any original lives in the managed root.
	for _, record := range records {
		if err := a.guardOriginal(record.Target.Path); err != nil {
			return nil, err
		}
	}

	set, err := a.createSet()
	if err != nil {
		return nil, err
	}
	a.logger.Info().Str("set", set.Path).Int("items", len(records)).Msg("Created backup set")

	result := &Result{Set: set}
	manifest := &Manifest{
		Version:     manifestVersion,
		CreatedAt:   set.Timestamp,
		ManagedRoot: a.managedRoot,
	}

	for _, record := range records {
		item := a.copyRecord(set, record)
		result.Items = append(result.Items, item)

		entry := ManifestItem{
			Path:   record.Target.RelPath,
			Kind:   record.Kind,
			Copied: item.Copied,
		}
		if record.IsLink() {
			entry.LinkTarget = record.ForeignTarget
		}
		if item.CopyErr != nil {
			entry.Error = item.CopyErr.Error()
		}
		manifest.Items = append(manifest.Items, entry)
	}

	if err := writeManifest(a.fs, set.Path, manifest); err != nil {
		a.logger.Error().Err(err).Msg("Backup manifest not written; restore will copy files only")
	}

	// Every copy has been attempted; originals go now.
	for _, record := range records {
		if err := a.removeOriginal(record.Target.Path); err != nil {
			return result, err
		}
	}

	return result, nil
}

// createSet picks the set directory for the current second, moving forward
// one second at a time if a set with that name already exists.
func (a *Archiver) createSet() (Set, error) {
	ts := a.now().Truncate(time.Second)
	for {
		path := filepath.Join(a.home, paths.BackupDirName(ts))
		if _, err := a.fs.Lstat(path); err == nil {
			ts = ts.Add(time.Second)
			continue
		} else if !os.IsNotExist(err) {
			return Set{}, errors.Wrapf(err, errors.ErrDirCreate, "cannot inspect backup directory %s", path)
		}

		if err := a.fs.MkdirAll(path, 0700); err != nil {
			return Set{}, errors.Wrapf(err, errors.ErrDirCreate, "failed to create backup directory %s", path).
				WithRemediation("mkdir -p " + path)
		}
		return Set{Name: filepath.Base(path), Path: path, Timestamp: ts}, nil
	}
}

func (a *Archiver) copyRecord(set Set, record types.ConflictRecord) Item {
	item := Item{
		Record:     record,
		BackupPath: filepath.Join(set.Path, record.Target.RelPath),
	}

	// A dangling link has no content to save; the manifest keeps its target.
	if record.Kind == types.ConflictDanglingDir {
		return item
	}

	if err := copyDereferenced(a.fs, record.Target.Path, item.BackupPath); err != nil {
		item.CopyErr = errors.Wrapf(err, errors.ErrBackupCopy, "failed to back up %s", record.Target.Path).
			WithDetail("path", record.Target.Path)
		a.logger.Error().
			Err(err).
			Str("path", record.Target.Path).
			Msg("Backup copy failed; the original will still be removed")
		return item
	}

	item.Copied = true
	a.logger.Debug().Str("from", record.Target.Path).Str("to", item.BackupPath).Msg("Backed up")
	return item
}

// guardOriginal refuses path when a directory link above it resolves into
// the managed root: removing it would delete a managed source file.
func (a *Archiver) guardOriginal(path string) error {
	if a.managedRoot == "" {
		return nil
	}
	link, found, err := conflicts.NearestLink(a.fs, a.home, filepath.Dir(path))
	if err != nil {
		return errors.Wrapf(err, errors.ErrRemoval, "cannot check the parents of %s", path).
			WithDetail("path", path)
	}
	if found && link.IntoRoot(a.managedRoot) {
		return errors.Newf(errors.ErrRemoval,
			"refusing to remove %s: %s links it into the managed root %s", path, link.Path, a.managedRoot).
			WithDetail("path", path).
			WithDetail("link", link.Path)
	}
	return nil
}

// removeOriginal deletes path itself; a symlink is unlinked, never followed.
func (a *Archiver) removeOriginal(path string) error {
	if err := a.guardOriginal(path); err != nil {
		return err
	}

	info, err := a.fs.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrRemoval, "cannot inspect %s for removal", path).
			WithRemediation("rm -rf " + path)
	}

	if info.IsDir() && info.Mode()&fs.ModeSymlink == 0 {
		err = a.fs.RemoveAll(path)
	} else {
		err = a.fs.Remove(path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrRemoval, "failed to remove %s after backup", path).
			WithDetail("path", path).
			WithRemediation("rm -rf " + path)
	}

	a.logger.Info().Str("path", path).Msg("Removed original")
	return nil
}
