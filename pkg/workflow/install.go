package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/system"
)

// Install backs up conflicts, installs packages, the prompt and the font,
// links every group and offers to change the login shell.
//
// Package index or required package failures, prompt install failures and
// mandatory link failures end the run with StatusFailed and an error.
// Optional packages, the font and the shell change only warn.
func (w *Workflow) Install(ctx context.Context) (*Result, error) {
	done := logging.LogOperationStart(w.logger, "install")
	defer done()

	result := &Result{}
	ok, err := w.confirm("Install dotfiles, packages and links into your home directory?")
	if err != nil {
		return failed(result, err)
	}
	if !ok {
		return declined(result, "install")
	}

	if err := w.backupConflicts(result); err != nil {
		return failed(result, err)
	}
	if result.Status == StatusDeclined {
		return result, nil
	}

	if err := w.installPackages(ctx, result); err != nil {
		return failed(result, err)
	}

	if w.deps.Prompt != nil {
		installed, err := w.deps.Prompt.Ensure(ctx)
		if err != nil {
			return failed(result, err)
		}
		w.outcome(result, installed, "installed "+w.cfg.Prompt.Binary, w.cfg.Prompt.Binary+" already installed")
	}

	if w.deps.Font != nil {
		installed, err := w.deps.Font.Ensure(ctx, w.cfg.Font.URL)
		if err != nil {
			w.warn(result, errors.Wrapf(err, errors.ErrFontInstall, "font %s not installed", w.cfg.Font.Family))
		} else {
			w.outcome(result, installed, "installed font "+w.cfg.Font.Family, "font "+w.cfg.Font.Family+" already installed")
		}
	}

	links, err := w.deps.Applier.Apply(ctx, w.cfg.Groups)
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
	result.step("linked %d group(s) with %s", len(links.Groups), links.Linker)
	w.deps.Reporter.Success(fmt.Sprintf("Linked configuration with %s", links.Linker))

	if w.cfg.Shell.Change {
		if err := w.changeShell(ctx, result, w.cfg.Shell.Name); err != nil {
			return failed(result, err)
		}
	}

	result.Status = StatusCompleted
	return result, nil
}

// backupConflicts scans, and when anything is in the way asks before
// backing it up and removing it. A "No" marks result declined.
func (w *Workflow) backupConflicts(result *Result) error {
	records := w.deps.Scanner.Scan(w.deps.Targets)
	result.Conflicts = records
	if len(records) == 0 {
		result.step("no conflicting files found")
		w.deps.Reporter.Info("No conflicting files found")
		return nil
	}

	w.deps.Reporter.Conflicts(records)
	ok, err := w.confirm(fmt.Sprintf("Back up and remove %d conflicting item(s)?", len(records)))
	if err != nil {
		return err
	}
	if !ok {
		result.decline("backup of conflicting files")
		return nil
	}

	res, err := w.deps.Archiver.Backup(records)
	result.Backup = res
	if res != nil {
		for _, item := range res.CopyFailures() {
			w.warn(result, errors.Wrapf(item.CopyErr, errors.ErrBackupCopy,
				"%s was removed but could not be backed up", item.Record.Target.Path))
		}
	}
	if err != nil {
		return err
	}

	result.step("backed up %d item(s) to %s", len(res.Items), res.Set.Path)
	w.deps.Reporter.Success(fmt.Sprintf("Backed up %d item(s) to %s", len(res.Items), res.Set.Path))
	return nil
}

func (w *Workflow) installPackages(ctx context.Context, result *Result) error {
	pk := w.cfg.Packages
	pm := w.deps.Packages

	if pk.Update {
		if err := pm.Update(ctx); err != nil {
			return err
		}
		result.step("updated package index")
	}

	missing := system.Missing(ctx, pm, pk.Required)
	if len(missing) > 0 {
		if err := pm.Install(ctx, missing...); err != nil {
			return err
		}
		result.step("installed %s", strings.Join(missing, ", "))
		w.deps.Reporter.Success("Installed " + strings.Join(missing, ", "))
	} else if len(pk.Required) > 0 {
		result.step("required packages already installed")
	}

	for _, name := range system.Missing(ctx, pm, pk.Optional) {
		if err := pm.Install(ctx, name); err != nil {
			w.warn(result, err)
			continue
		}
		result.step("installed %s", name)
		w.deps.Reporter.Success("Installed " + name)
	}
	return nil
}

// changeShell asks before switching the login shell to name. Failures are
// warnings carrying the manual command.
func (w *Workflow) changeShell(ctx context.Context, result *Result, name string) error {
	ok, err := w.confirm(fmt.Sprintf("Change your login shell to %s?", name))
	if err != nil {
		return err
	}
	if !ok {
		result.step("kept the current login shell")
		return nil
	}

	path, err := w.deps.Shell.Resolve(name)
	if err == nil {
		err = w.deps.Shell.SetDefault(ctx, path)
	}
	if err != nil {
		w.warn(result, err)
		return nil
	}
	result.step("login shell set to %s", path)
	w.deps.Reporter.Success(fmt.Sprintf("Login shell set to %s (log out and back in to use it)", path))
	return nil
}

func (w *Workflow) outcome(result *Result, changed bool, did, already string) {
	if changed {
		result.step("%s", did)
		w.deps.Reporter.Success(strings.ToUpper(did[:1]) + did[1:])
		return
	}
	result.step("%s", already)
}

// warn records a non-fatal failure. The manual fix command, when known, is
// part of the message.
func (w *Workflow) warn(result *Result, err error) {
	msg := err.Error()
	if cmd := errors.Remediation(err); cmd != "" {
		msg = fmt.Sprintf("%s; you can fix it manually with: %s", msg, cmd)
	}
	w.logger.Warn().Err(err).Msg("Step failed, continuing")
	result.Warnings = append(result.Warnings, msg)
	w.deps.Reporter.Warning(msg)
}
