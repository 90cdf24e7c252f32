package workflow

import (
	"github.com/arthur-debert/dotstow/pkg/backup"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// Report is the read-only view produced by Status.
type Report struct {
	Root      string
	Home      string
	Conflicts []types.ConflictRecord
	Backups   []backup.Set
}

// Status scans for conflicts and lists backups. It changes nothing.
func (w *Workflow) Status() *Report {
	return &Report{
		Root:      w.deps.Root,
		Home:      w.deps.Home,
		Conflicts: w.deps.Scanner.Scan(w.deps.Targets),
		Backups:   w.deps.Catalog.List(),
	}
}
