package output

import (
	"fmt"

	"github.com/arthur-debert/dotstow/pkg/linker"
	"github.com/arthur-debert/dotstow/pkg/ui/output/styles"
	"github.com/arthur-debert/dotstow/pkg/workflow"
)

// Result prints the summary of a finished flow.
func (p *Printer) Result(command string, result *workflow.Result) {
	if result == nil {
		return
	}
	if result.Links != nil {
		p.Links(result.Links)
	}
	p.List("Steps", result.Steps)
	p.List("Warnings", result.Warnings)

	switch result.Status {
	case workflow.StatusCompleted:
		p.Success(fmt.Sprintf("%s completed", command))
	case workflow.StatusDeclined:
		p.Info(fmt.Sprintf("%s cancelled, nothing was changed", command))
	case workflow.StatusFailed:
		p.failure.Println(fmt.Sprintf("%s failed", command))
	}
}

// Links prints one line per group of a link or unlink run.
func (p *Printer) Links(result *linker.Result) {
	if len(result.Groups) == 0 {
		return
	}
	p.Header(fmt.Sprintf("Groups (%s)", result.Linker))
	for _, g := range result.Groups {
		var mark string
		switch {
		case g.OK():
			mark = styles.Render("Success", "ok")
		case g.Group.Optional:
			mark = styles.Render("Warning", "skipped")
		default:
			mark = styles.Render("Error", "failed")
		}
		fmt.Fprintf(p.w, "  %-10s %s\n", g.Group.Name, mark)
	}
}

// Status prints a status report.
func (p *Printer) Status(report *workflow.Report) {
	fmt.Fprintf(p.w, "%s %s\n", styles.Render("Bold", "dotfiles:"), report.Root)
	fmt.Fprintf(p.w, "%s %s\n", styles.Render("Bold", "home:    "), report.Home)
	p.Conflicts(report.Conflicts)
	p.Backups(report.Backups)
}
