package dotstow

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotstow/pkg/config"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/filesystem"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/runner"
	"github.com/arthur-debert/dotstow/pkg/ui"
	"github.com/arthur-debert/dotstow/pkg/ui/confirmations"
	"github.com/arthur-debert/dotstow/pkg/ui/output"
	"github.com/arthur-debert/dotstow/pkg/workflow"
	"github.com/spf13/cobra"
)

// app is what every command needs once flags are parsed.
type app struct {
	cfg     *config.Config
	paths   *paths.Paths
	printer *output.Printer
	console *confirmations.Console
	yes     bool
}

// globalFlags reads the persistent flags from the root command.
type globalFlags struct {
	configFile string
	root       string
	yes        bool
	strict     bool
}

func readGlobalFlags(cmd *cobra.Command) globalFlags {
	flags := cmd.Root().PersistentFlags()
	var g globalFlags
	g.configFile, _ = flags.GetString("config")
	g.root, _ = flags.GetString("root")
	g.yes, _ = flags.GetBool("yes")
	g.strict, _ = flags.GetBool("strict")
	return g
}

// newApp loads configuration and resolves paths for cmd.
func newApp(cmd *cobra.Command) (*app, error) {
	g := readGlobalFlags(cmd)
	logger := logging.GetLogger("cmd")

	overrides := map[string]interface{}{}
	if g.root != "" {
		overrides["paths.root"] = g.root
	}
	if g.strict {
		overrides["link.strict"] = true
	}

	var p *paths.Paths
	cfg, err := config.Load(config.LoadOptions{
		UserFile:        g.configFile,
		DefaultUserFile: paths.UserConfigFile(),
		Overrides:       overrides,
		ResolveRoot: func(configured string) (string, error) {
			// DOTFILES_ROOT beats a root set only in the user config file.
			if g.root == "" && os.Getenv(config.EnvPrefix+"PATHS_ROOT") == "" &&
				os.Getenv(paths.EnvDotfilesRoot) != "" {
				configured = ""
			}
			resolved, err := paths.New(paths.Options{ManagedRoot: configured})
			if err != nil {
				return "", errors.Wrap(err, errors.ErrConfigLoad, MsgErrInitPaths)
			}
			p = resolved
			return resolved.ManagedRoot(), nil
		},
	})
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, p.ManagedRoot())
	}
	logger.Info().
		Str("root", p.ManagedRoot()).
		Str("home", p.Home()).
		Strs("sources", cfg.Sources).
		Msg("Configuration resolved")

	return &app{
		cfg:     cfg,
		paths:   p,
		printer: output.NewPrinter(out, ui.ColorEnabled(out)),
		console: confirmations.NewConsole(cmd.InOrStdin(), out, g.yes),
		yes:     g.yes,
	}, nil
}

// workflow wires the real collaborators for this run.
func (a *app) workflow() (*workflow.Workflow, error) {
	return workflow.Wire(a.cfg, workflow.Env{
		Paths:     a.paths,
		FS:        filesystem.NewOS(),
		Runner:    runner.NewExecRunner(runner.WithSudo(a.cfg.Packages.UseSudo)),
		Scripts:   runner.NewScriptRunner(),
		Confirmer: a.console,
		Prompter:  a.console,
		Reporter:  a.printer,
	})
}
