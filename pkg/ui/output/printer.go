package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/backup"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/arthur-debert/dotstow/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Printer writes human readable output to one writer. It implements
// workflow.Reporter.
type Printer struct {
	w     io.Writer
	color bool

	info    *pterm.PrefixPrinter
	success *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

// NewPrinter creates a Printer. With color false, pterm and lipgloss emit
// plain text; this setting is process wide.
func NewPrinter(w io.Writer, color bool) *Printer {
	if color {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:       w,
		color:   color,
		info:    pterm.Info.WithWriter(w),
		success: pterm.Success.WithWriter(w),
		warning: pterm.Warning.WithWriter(w),
		failure: pterm.Error.WithWriter(w),
	}
}

// Color reports whether the printer emits colors.
func (p *Printer) Color() bool { return p.color }

// Writer is the destination of the printer.
func (p *Printer) Writer() io.Writer { return p.w }

func (p *Printer) Info(msg string) { p.info.Println(msg) }
func (p *Printer) Success(msg string) { p.success.Println(msg) }
func (p *Printer) Warning(msg string) { p.warning.Println(msg) }

// Error prints err and, when one is attached, the command that fixes the
// problem by hand.
func (p *Printer) Error(err error) {
	p.failure.Println(err.Error())
	if cmd := errors.Remediation(err); cmd != "" {
		fmt.Fprintln(p.w, "you can fix it manually with:")
		fmt.Fprintln(p.w, styles.Render("Command", cmd))
	}
}

// Header prints a section title.
func (p *Printer) Header(title string) {
	fmt.Fprintln(p.w, styles.Render("Header", title))
}

// Conflicts lists the items that are in the way of the managed links.
func (p *Printer) Conflicts(records []types.ConflictRecord) {
	if len(records) == 0 {
		fmt.Fprintln(p.w, styles.Render("Muted", "No conflicting files"))
		return
	}
	p.Header(fmt.Sprintf("Conflicting files (%d)", len(records)))
	for _, record := range records {
		fmt.Fprintln(p.w, "  "+ConflictLine(record))
	}
}

// ConflictLine describes one conflict on a single line.
func ConflictLine(record types.ConflictRecord) string {
	line := fmt.Sprintf("%s  %s",
		styles.Render("Path", DisplayPath(record.Target)),
		styles.Render("Kind", KindLabel(record.Kind)))
	switch {
	case record.IsLink():
		line += " " + styles.Render("LinkTarget", "-> "+record.ForeignTarget)
	case record.Err != nil:
		line += " " + styles.Render("Muted", record.Err.Error())
	}
	return line
}

// KindLabel is the human name of a conflict kind.
func KindLabel(kind types.ConflictKind) string {
	switch kind {
	case types.ConflictRegular:
		return "regular file"
	case types.ConflictForeignLink:
		return "link outside the dotfiles"
	case types.ConflictDanglingDir:
		return "dangling directory link"
	case types.ConflictDirectory:
		return "directory"
	case types.ConflictUnprobeable:
		return "unreadable"
	}
	return string(kind)
}

// DisplayPath shows a target relative to home.
func DisplayPath(target types.ManagedTarget) string {
	if target.RelPath == "" {
		return target.Path
	}
	return "~/" + target.RelPath
}

// Backups lists backup sets with the 1-based index used to select them.
func (p *Printer) Backups(sets []backup.Set) {
	if len(sets) == 0 {
		fmt.Fprintln(p.w, styles.Render("Muted", "No backups found"))
		return
	}
	p.Header(fmt.Sprintf("Backups (%d)", len(sets)))
	for i, set := range sets {
		fmt.Fprintf(p.w, "  %s %s  %s\n",
			styles.Render("Index", fmt.Sprintf("%d)", i+1)),
			set.Name,
			styles.Render("Muted", set.Timestamp.Format("2006-01-02 15:04:05")))
	}
}

// List prints items as an indented bullet list under title.
func (p *Printer) List(title string, items []string) {
	if len(items) == 0 {
		return
	}
	p.Header(title)
	for _, item := range items {
		fmt.Fprintln(p.w, "  - "+strings.TrimSpace(item))
	}
}
