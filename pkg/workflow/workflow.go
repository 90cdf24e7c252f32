package workflow

import (
	"context"
	"fmt"

	"github.com/arthur-debert/dotstow/pkg/backup"
	"github.com/arthur-debert/dotstow/pkg/config"
	"github.com/arthur-debert/dotstow/pkg/linker"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/system"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// Status is how a flow ended.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusDeclined  Status = "declined"
	StatusFailed    Status = "failed"
)

// Result is what a flow did, for display.
type Result struct {
	Status    Status
	Steps     []string
	Warnings  []string
	Conflicts []types.ConflictRecord

	Backup  *backup.Result
	Links   *linker.Result
	Restore *backup.RestoreResult
}

func (r *Result) step(format string, args ...interface{}) {
	r.Steps = append(r.Steps, fmt.Sprintf(format, args...))
}

func (r *Result) warn(err error) {
	r.Warnings = append(r.Warnings, err.Error())
}

// Scanner finds conflicting targets.
type Scanner interface {
	Scan(targets []types.ManagedTarget) []types.ConflictRecord
}

// Archiver backs up and removes conflicts.
type Archiver interface {
	Backup(records []types.ConflictRecord) (*backup.Result, error)
}

// Catalog lists backup sets, oldest first.
type Catalog interface {
	List() []backup.Set
}

// Restorer puts backup sets back in place.
type Restorer interface {
	Restore(set backup.Set) (*backup.RestoreResult, error)
	Delete(set backup.Set) error
}

// LinkApplier links groups into home.
type LinkApplier interface {
	Apply(ctx context.Context, groups []types.LinkGroup) (*linker.Result, error)
}

// LinkRemover removes the links of groups.
type LinkRemover interface {
	Unlink(ctx context.Context, groups []types.LinkGroup) (*linker.Result, error)
}

// ShellChanger switches the login shell.
type ShellChanger interface {
	Resolve(name string) (string, error)
	SetDefault(ctx context.Context, path string) error
}

// FontInstaller installs the terminal font.
type FontInstaller interface {
	Ensure(ctx context.Context, url string) (bool, error)
}

// PromptInstaller installs the shell prompt.
type PromptInstaller interface {
	Ensure(ctx context.Context) (bool, error)
}

// Reporter shows progress while a flow runs.
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Conflicts(records []types.ConflictRecord)
	Backups(sets []backup.Set)
}

// Deps are the collaborators of a Workflow. Font and Prompt may be nil
// when those features are disabled.
type Deps struct {
	Root      string
	Home      string
	Targets   []types.ManagedTarget
	Scanner   Scanner
	Archiver  Archiver
	Catalog   Catalog
	Restorer  Restorer
	Applier   LinkApplier
	Unlinker  LinkRemover
	Packages  system.PackageManager
	Shell     ShellChanger
	Font      FontInstaller
	Prompt    PromptInstaller
	Confirmer types.Confirmer
	Prompter  types.Prompter
	Reporter  Reporter
}

// maxSelectionAttempts bounds how often an invalid backup index is reprompted.
const maxSelectionAttempts = 3

// Workflow runs the flows against one configuration.
type Workflow struct {
	cfg    *config.Config
	deps   Deps
	logger zerolog.Logger
}

// New creates a Workflow.
func New(cfg *config.Config, deps Deps) *Workflow {
	return &Workflow{cfg: cfg, deps: deps, logger: logging.GetLogger("workflow")}
}

// confirm asks prompt and logs the answer.
func (w *Workflow) confirm(prompt string) (bool, error) {
	d, err := w.deps.Confirmer.Confirm(prompt)
	if err != nil {
		return false, err
	}
	w.logger.Debug().Str("prompt", prompt).Stringer("answer", d).Msg("Confirmation")
	return d == types.Yes, nil
}

func (r *Result) decline(what string) {
	r.Status = StatusDeclined
	r.step("declined %s", what)
}

func declined(result *Result, what string) (*Result, error) {
	result.decline(what)
	return result, nil
}

func failed(result *Result, err error) (*Result, error) {
	result.Status = StatusFailed
	return result, err
}
