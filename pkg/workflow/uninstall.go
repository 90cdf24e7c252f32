package workflow

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotstow/pkg/backup"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
)

// UninstallOptions tunes Uninstall.
type UninstallOptions struct {
	// Selection restores the backup with this 1-based index without asking.
	Selection string

	// KeepBackups skips the restore offer.
	KeepBackups bool
}

// Uninstall removes the links of every group, offers to restore a backup
// and to switch the login shell back to the fallback shell.
func (w *Workflow) Uninstall(ctx context.Context, opts UninstallOptions) (*Result, error) {
	done := logging.LogOperationStart(w.logger, "uninstall")
	defer done()

	result := &Result{}
	ok, err := w.confirm("Remove the dotfile links from your home directory?")
	if err != nil {
		return failed(result, err)
	}
	if !ok {
		return declined(result, "uninstall")
	}

	links, err := w.deps.Unlinker.Unlink(ctx, w.cfg.Groups)
	result.Links = links
	if links != nil {
		for _, warning := range links.Warnings {
			result.Warnings = append(result.Warnings, warning)
			w.deps.Reporter.Warning(warning)
		}
	}
	if err != nil {
		return failed(result, err)
	}
	result.step("removed links of %d group(s) with %s", len(links.Groups), links.Linker)
	w.deps.Reporter.Success("Removed dotfile links")

	if err := w.offerRestore(result, opts); err != nil {
		return failed(result, err)
	}

	if w.cfg.Shell.Change {
		if err := w.changeShell(ctx, result, w.cfg.Shell.Fallback); err != nil {
			return failed(result, err)
		}
	}

	result.Status = StatusCompleted
	return result, nil
}

func (w *Workflow) offerRestore(result *Result, opts UninstallOptions) error {
	if opts.KeepBackups {
		return nil
	}
	sets := w.deps.Catalog.List()
	if len(sets) == 0 {
		return nil
	}

	if opts.Selection != "" {
		set, err := backup.Select(opts.Selection, sets)
		if err != nil {
			return err
		}
		return w.restore(result, set)
	}

	w.deps.Reporter.Backups(sets)
	ok, err := w.confirm("Restore one of these backups?")
	if err != nil || !ok {
		return err
	}
	set, err := w.selectBackup(sets)
	if err != nil {
		return err
	}
	return w.restore(result, set)
}

// Restore restores the backup chosen by selection, a 1-based index into the
// catalog. An empty selection lists the backups and asks for one.
func (w *Workflow) Restore(ctx context.Context, selection string) (*Result, error) {
	result := &Result{}
	sets := w.deps.Catalog.List()
	if len(sets) == 0 {
		return failed(result, errors.New(errors.ErrNotFound, "no backups found"))
	}

	var set backup.Set
	var err error
	if selection == "" {
		w.deps.Reporter.Backups(sets)
		set, err = w.selectBackup(sets)
	} else {
		set, err = backup.Select(selection, sets)
	}
	if err != nil {
		return failed(result, err)
	}

	if err := ctx.Err(); err != nil {
		return failed(result, err)
	}
	if err := w.restore(result, set); err != nil {
		return failed(result, err)
	}
	result.Status = StatusCompleted
	return result, nil
}

// selectBackup asks for an index until it is valid, giving up with the
// last SELECTION error after maxSelectionAttempts.
func (w *Workflow) selectBackup(sets []backup.Set) (backup.Set, error) {
	var lastErr error
	for attempt := 0; attempt < maxSelectionAttempts; attempt++ {
		answer, err := w.deps.Prompter.Ask(fmt.Sprintf("Backup to restore [1-%d]", len(sets)))
		if err != nil {
			return backup.Set{}, err
		}
		set, err := backup.Select(answer, sets)
		if err == nil {
			return set, nil
		}
		lastErr = err
		w.deps.Reporter.Warning(err.Error())
	}
	return backup.Set{}, lastErr
}

// restore copies set back and, when every item made it, offers to delete it.
func (w *Workflow) restore(result *Result, set backup.Set) error {
	res, err := w.deps.Restorer.Restore(set)
	result.Restore = res
	if err != nil {
		return err
	}

	failures := res.Failed()
	for _, item := range failures {
		w.warn(result, errors.Wrapf(item.Err, errors.ErrRestore, "%s not restored", item.Path))
	}
	result.step("restored %d of %d item(s) from %s", len(res.Items)-len(failures), len(res.Items), set.Name)
	w.deps.Reporter.Success(fmt.Sprintf("Restored backup %s", set.Name))

	if len(failures) > 0 {
		result.step("kept %s because some items were not restored", set.Name)
		return nil
	}

	ok, err := w.confirm(fmt.Sprintf("Delete backup %s?", set.Name))
	if err != nil {
		return err
	}
	if !ok {
		result.step("kept backup %s", set.Name)
		return nil
	}
	if err := w.deps.Restorer.Delete(set); err != nil {
		w.warn(result, err)
		return nil
	}
	result.step("deleted backup %s", set.Name)
	return nil
}
