package dotstow

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotstow/internal/version"
	"github.com/arthur-debert/dotstow/pkg/config"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/ui"
	"github.com/arthur-debert/dotstow/pkg/ui/output"
	"github.com/arthur-debert/dotstow/pkg/workflow"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := a.workflow()
			if err != nil {
				return err
			}

			result, err := w.Install(cmd.Context())
			a.printer.Result("install", result)
			if err != nil {
				return err
			}

			if result.Status == workflow.StatusCompleted {
				shell := ""
				if a.cfg.Shell.Change {
					shell = a.cfg.Shell.Name
				}
				family := ""
				if a.cfg.Font.Enabled {
					family = a.cfg.Font.Family
				}
				a.printer.Notes(output.InstallNotes(family, shell))
			}
			return nil
		},
	}
}

func newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uninstall",
		Short:   MsgUninstallShort,
		Long:    MsgUninstallLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := a.workflow()
			if err != nil {
				return err
			}

			selection, _ := cmd.Flags().GetString("restore")
			keep, _ := cmd.Flags().GetBool("keep-backups")
			// --yes cannot pick a backup, so without --restore nothing is restored.
			if a.yes && selection == "" {
				keep = true
			}

			result, err := w.Uninstall(cmd.Context(), workflow.UninstallOptions{
				Selection:   selection,
				KeepBackups: keep,
			})
			a.printer.Result("uninstall", result)
			return err
		},
	}
	cmd.Flags().String("restore", "", MsgFlagRestore)
	cmd.Flags().Bool("keep-backups", false, MsgFlagKeepBackups)
	cmd.MarkFlagsMutuallyExclusive("restore", "keep-backups")
	return cmd
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := ui.ParseFormat(name)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := a.workflow()
			if err != nil {
				return err
			}

			report := w.Status()
			if format.Structured() {
				return output.WriteStructured(cmd.OutOrStdout(), format, output.NewStatusView(report))
			}
			printer := a.printer
			if format == ui.FormatText && printer.Color() {
				printer = output.NewPrinter(cmd.OutOrStdout(), false)
			}
			printer.Status(report)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "auto", MsgFlagFormat)
	return cmd
}

func newBackupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "backups",
		Short:   MsgBackupsShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := a.workflow()
			if err != nil {
				return err
			}
			a.printer.Backups(w.Status().Backups)
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "restore [index]",
		Short:   MsgRestoreShort,
		Long:    MsgRestoreLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := a.workflow()
			if err != nil {
				return err
			}

			selection := ""
			if len(args) == 1 {
				selection = args[0]
			}
			result, err := w.Restore(cmd.Context(), selection)
			a.printer.Result("restore", result)
			return err
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if template, _ := cmd.Flags().GetBool("template"); template {
				fmt.Fprint(out, config.GenerateConfigContent())
				return nil
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, MsgErrConfigShow)
			}
			if len(a.cfg.Sources) == 0 {
				fmt.Fprint(out, MsgConfigNoSources)
			} else {
				fmt.Fprintf(out, MsgConfigSources, strings.Join(a.cfg.Sources, ", "))
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().Bool("template", false, MsgFlagTemplate)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}
