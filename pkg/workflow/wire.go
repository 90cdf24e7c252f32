package workflow

import (
	"github.com/arthur-debert/dotstow/pkg/backup"
	"github.com/arthur-debert/dotstow/pkg/config"
	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/linker"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/arthur-debert/dotstow/pkg/system"
	"github.com/arthur-debert/dotstow/pkg/types"
)

// Env holds the process-level pieces Wire combines with configuration.
type Env struct {
	Paths     *paths.Paths
	FS        types.FS
	Runner    runner.Runner
	Scripts   system.ScriptExecutor
	Confirmer types.Confirmer
	Prompter  types.Prompter
	Reporter  Reporter
}

// Wire builds a Workflow backed by the real scanner, archiver, linkers and
// system collaborators.
func Wire(cfg *config.Config, env Env) (*Workflow, error) {
	p := env.Paths
	mode, err := conflicts.ParseContainment(cfg.Link.Containment)
	if err != nil {
		return nil, err
	}
	classifier := conflicts.New(env.FS, p.ManagedRoot(), mode)

	primary, err := linker.New(cfg.Link.Manager, env.Runner, env.FS, p, classifier)
	if err != nil {
		return nil, err
	}
	native := linker.NewNativeLinker(env.FS, p, classifier)
	verifier := linker.NewVerifier(env.FS, p, classifier)

	deps := Deps{
		Root:      p.ManagedRoot(),
		Home:      p.Home(),
		Targets:   p.ManagedTargets(cfg.Groups),
		Scanner:   classifier,
		Archiver:  backup.NewArchiver(env.FS, p.Home(), backup.WithManagedRoot(p.ManagedRoot())),
		Catalog:   backup.NewCatalog(env.FS, p.Home()),
		Restorer:  backup.NewRestorer(env.FS, p.Home(), backup.WithRestoreRoot(p.ManagedRoot())),
		Applier:   linker.NewApplier(primary, verifier, env.FS, p, cfg.Link.Strict),
		Unlinker:  linker.NewUnlinker(primary, native),
		Packages:  system.NewApt(env.Runner),
		Shell:     system.NewShellChanger(env.FS, env.Runner, cfg.Shell.ShellsFile),
		Confirmer: env.Confirmer,
		Prompter:  env.Prompter,
		Reporter:  env.Reporter,
	}
	if cfg.Prompt.Enabled {
		deps.Prompt = system.NewPromptInstaller(env.Runner, env.Scripts,
			cfg.Prompt.Binary, cfg.Prompt.InstallURL, cfg.Prompt.BinDir)
	}
	if cfg.Font.Enabled {
		deps.Font = system.NewFontInstaller(env.FS, env.Runner, p.FontsDir(), cfg.Font.Family)
	}
	return New(cfg, deps), nil
}
