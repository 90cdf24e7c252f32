package output_test

import (
	"bytes"
	stderrors "errors"
	"testing"
	"time"

	"github.com/arthur-debert/dotstow/pkg/backup"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/linker"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/arthur-debert/dotstow/pkg/ui/output"
	"github.com/arthur-debert/dotstow/pkg/workflow"
	"github.com/stretchr/testify/assert"
)

var _ workflow.Reporter = (*output.Printer)(nil)

func newPrinter() (*output.Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return output.NewPrinter(&buf, false), &buf
}

func sampleConflicts() []types.ConflictRecord {
	return []types.ConflictRecord{
		{
			Target: types.ManagedTarget{Path: "/home/u/.zshrc", RelPath: ".zshrc", Group: "shell"},
			Kind:   types.ConflictRegular,
		},
		{
			Target:        types.ManagedTarget{Path: "/home/u/.zshenv", RelPath: ".zshenv", Group: "shell"},
			Kind:          types.ConflictForeignLink,
			ForeignTarget: "/opt/shared/zshenv",
		},
		{
			Target:        types.ManagedTarget{Path: "/home/u/.config/alacritty", RelPath: ".config/alacritty", Group: "terminal", IsDir: true},
			Kind:          types.ConflictDanglingDir,
			ForeignTarget: "/gone/alacritty",
		},
		{
			Target: types.ManagedTarget{Path: "/home/u/.zprofile", RelPath: ".zprofile", Group: "shell"},
			Kind:   types.ConflictUnprobeable,
			Err:    stderrors.New("permission denied"),
		},
	}
}

func sampleSets() []backup.Set {
	return []backup.Set{
		{
			Name:      ".dotfiles_backup_20261018_090000",
			Path:      "/home/u/.dotfiles_backup_20261018_090000",
			Timestamp: time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local),
		},
		{
			Name:      ".dotfiles_backup_20261019_143005",
			Path:      "/home/u/.dotfiles_backup_20261019_143005",
			Timestamp: time.Date(2026, 10, 19, 14, 30, 5, 0, time.Local),
		},
	}
}

func TestPrinter_Messages(t *testing.T) {
	p, buf := newPrinter()
	p.Info("scanning")
	p.Success("linked")
	p.Warning("font skipped")

	out := buf.String()
	assert.Contains(t, out, "scanning")
	assert.Contains(t, out, "linked")
	assert.Contains(t, out, "font skipped")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestPrinter_ErrorWithRemediation(t *testing.T) {
	p, buf := newPrinter()
	p.Error(errors.New(errors.ErrShellChange, "failed to change login shell").
		WithRemediation("chsh -s /usr/bin/zsh"))

	out := buf.String()
	assert.Contains(t, out, "[SHELL_CHANGE] failed to change login shell")
	assert.Contains(t, out, "you can fix it manually with:")
	assert.Contains(t, out, "chsh -s /usr/bin/zsh")
}

func TestPrinter_Conflicts(t *testing.T) {
	p, buf := newPrinter()
	p.Conflicts(sampleConflicts())

	out := buf.String()
	assert.Contains(t, out, "Conflicting files (4)")
	assert.Contains(t, out, "~/.zshrc  regular file")
	assert.Contains(t, out, "~/.zshenv  link outside the dotfiles -> /opt/shared/zshenv")
	assert.Contains(t, out, "~/.config/alacritty  dangling directory link -> /gone/alacritty")
	assert.Contains(t, out, "~/.zprofile  unreadable permission denied")

	buf.Reset()
	p.Conflicts(nil)
	assert.Contains(t, buf.String(), "No conflicting files")
}

func TestPrinter_Backups(t *testing.T) {
	p, buf := newPrinter()
	p.Backups(sampleSets())

	out := buf.String()
	assert.Contains(t, out, "Backups (2)")
	assert.Contains(t, out, "1) .dotfiles_backup_20261018_090000  2026-10-18 09:00:00")
	assert.Contains(t, out, "2) .dotfiles_backup_20261019_143005  2026-10-19 14:30:05")
}

func TestPrinter_Result(t *testing.T) {
	p, buf := newPrinter()
	p.Result("install", &workflow.Result{
		Status:   workflow.StatusCompleted,
		Steps:    []string{"backed up 1 item(s)", "linked 3 group(s) with native"},
		Warnings: []string{"font not installed"},
		Links: &linker.Result{
			Linker: "native",
			Groups: []linker.GroupResult{
				{Group: types.LinkGroup{Name: "shell"}},
				{Group: types.LinkGroup{Name: "terminal", Optional: true}, Err: stderrors.New("busy")},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Groups (native)")
	assert.Contains(t, out, "shell      ok")
	assert.Contains(t, out, "terminal   skipped")
	assert.Contains(t, out, "- linked 3 group(s) with native")
	assert.Contains(t, out, "- font not installed")
	assert.Contains(t, out, "install completed")

	buf.Reset()
	p.Result("uninstall", &workflow.Result{Status: workflow.StatusDeclined})
	assert.Contains(t, buf.String(), "uninstall cancelled, nothing was changed")
}

func TestPrinter_Status(t *testing.T) {
	p, buf := newPrinter()
	p.Status(&workflow.Report{Root: "/home/u/dotfiles", Home: "/home/u"})

	out := buf.String()
	assert.Contains(t, out, "/home/u/dotfiles")
	assert.Contains(t, out, "No conflicting files")
	assert.Contains(t, out, "No backups found")
}

func TestNotes(t *testing.T) {
	notes := output.InstallNotes("JetBrainsMono", "/usr/bin/zsh")
	assert.Contains(t, notes, "JetBrainsMono Nerd Font")
	assert.Contains(t, notes, "`/usr/bin/zsh`")

	p, buf := newPrinter()
	p.Notes(notes)
	assert.Equal(t, notes, buf.String(), "markdown is printed verbatim without color")

	assert.Contains(t, output.RenderMarkdown("# Title\n", true, 40), "Title")
}
