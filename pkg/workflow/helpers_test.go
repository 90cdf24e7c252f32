package workflow_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/dotstow/pkg/backup"
	"github.com/arthur-debert/dotstow/pkg/config"
	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/linker"
	"github.com/arthur-debert/dotstow/pkg/testutil"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/arthur-debert/dotstow/pkg/workflow"
)

// answers replies to confirmations in order and to prompts in order.
// Running out of answers means No and an empty line.
type answers struct {
	decisions []types.Decision
	lines     []string
	asked     []string
}

func (a *answers) Confirm(prompt string) (types.Decision, error) {
	a.asked = append(a.asked, prompt)
	if len(a.decisions) == 0 {
		return types.No, nil
	}
	d := a.decisions[0]
	a.decisions = a.decisions[1:]
	return d, nil
}

func (a *answers) Ask(prompt string) (string, error) {
	a.asked = append(a.asked, prompt)
	if len(a.lines) == 0 {
		return "", nil
	}
	line := a.lines[0]
	a.lines = a.lines[1:]
	return line, nil
}

type reporter struct {
	infos     []string
	successes []string
	warnings  []string
	conflicts []types.ConflictRecord
	backups   []backup.Set
}

func (r *reporter) Info(msg string) { r.infos = append(r.infos, msg) }
func (r *reporter) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *reporter) Warning(msg string) { r.warnings = append(r.warnings, msg) }

func (r *reporter) Conflicts(records []types.ConflictRecord) { r.conflicts = records }
func (r *reporter) Backups(sets []backup.Set) { r.backups = sets }

type packages struct {
	installed map[string]bool
	failures  map[string]error
	updateErr error
	updated   bool
	installs  [][]string
}

func (p *packages) Update(ctx context.Context) error {
	p.updated = true
	return p.updateErr
}

func (p *packages) Install(ctx context.Context, names ...string) error {
	p.installs = append(p.installs, names)
	for _, name := range names {
		if err := p.failures[name]; err != nil {
			return err
		}
	}
	for _, name := range names {
		p.installed[name] = true
	}
	return nil
}

func (p *packages) Installed(ctx context.Context, name string) bool {
	return p.installed[name]
}

type shell struct {
	paths  map[string]string
	setErr error
	set    []string
}

func (s *shell) Resolve(name string) (string, error) {
	return s.paths[name], nil
}

func (s *shell) SetDefault(ctx context.Context, path string) error {
	s.set = append(s.set, path)
	return s.setErr
}

// installer fakes both the font and the prompt installer.
type installer struct {
	present bool
	err     error
	calls   int
	url     string
}

func (i *installer) Ensure(ctx context.Context) (bool, error) {
	i.calls++
	return !i.present && i.err == nil, i.err
}

type fontInstaller struct{ installer }

func (f *fontInstaller) Ensure(ctx context.Context, url string) (bool, error) {
	f.url = url
	return f.installer.Ensure(ctx)
}

// harness runs workflows against a temp home and managed root with the
// real scanner, archiver and native linker.
type harness struct {
	env      *testutil.TestEnvironment
	cfg      *config.Config
	answers  *answers
	reporter *reporter
	packages *packages
	shell    *shell
	deps     workflow.Deps
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	env.SetupStandardPackages()

	cfg := config.Default()
	cfg.Groups = testutil.StandardGroups()
	cfg.Link.Manager = linker.NameNative
	cfg.Prompt.Enabled = false
	cfg.Font.Enabled = false

	h := &harness{
		env:      env,
		cfg:      cfg,
		answers:  &answers{},
		reporter: &reporter{},
		packages: &packages{installed: map[string]bool{}, failures: map[string]error{}},
		shell:    &shell{paths: map[string]string{"zsh": "/usr/bin/zsh", "bash": "/bin/bash"}},
	}

	classifier := conflicts.New(env.FS, env.ManagedRoot, conflicts.ContainmentSubstring)
	native := linker.NewNativeLinker(env.FS, env.Paths, classifier)
	h.deps = workflow.Deps{
		Root:      env.ManagedRoot,
		Home:      env.HomeDir,
		Targets:   env.Paths.ManagedTargets(cfg.Groups),
		Scanner:   classifier,
		Archiver:  backup.NewArchiver(env.FS, env.HomeDir, backup.WithManagedRoot(env.ManagedRoot)),
		Catalog:   backup.NewCatalog(env.FS, env.HomeDir),
		Restorer:  backup.NewRestorer(env.FS, env.HomeDir),
		Applier:   linker.NewApplier(native, linker.NewVerifier(env.FS, env.Paths, classifier), env.FS, env.Paths, false),
		Unlinker:  linker.NewUnlinker(native, native),
		Packages:  h.packages,
		Shell:     h.shell,
		Confirmer: h.answers,
		Prompter:  h.answers,
		Reporter:  h.reporter,
	}
	return h
}

func (h *harness) workflow() *workflow.Workflow {
	return workflow.New(h.cfg, h.deps)
}

func (h *harness) reply(decisions ...types.Decision) {
	h.answers.decisions = append(h.answers.decisions, decisions...)
}
