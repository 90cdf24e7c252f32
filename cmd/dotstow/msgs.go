package dotstow

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install and link an Ubuntu dotfiles bundle"
	MsgInstallShort    = "Back up conflicts, install packages and link the dotfiles"
	MsgUninstallShort  = "Remove the links and optionally restore a backup"
	MsgStatusShort     = "Show conflicting files and existing backups"
	MsgBackupsShort    = "List backup sets"
	MsgRestoreShort    = "Restore a backup set"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNoBackups       = "No backups found."
	MsgConfigSources   = "# sources: %s\n"
	MsgConfigNoSources = "# sources: embedded defaults only\n"
	MsgVersionFormat   = "dotstow version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrInitPaths  = "failed to resolve the dotfiles directory"
	MsgErrNoCommand  = "no command specified"
	MsgErrConfigShow = "failed to render configuration"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Configuration file (default $XDG_CONFIG_HOME/dotstow/config.toml)"
	MsgFlagRoot        = "Dotfiles directory (default $DOTFILES_ROOT, the git toplevel or the current directory)"
	MsgFlagYes         = "Answer yes to every confirmation"
	MsgFlagStrict      = "Stop at the first link group that fails"
	MsgFlagFormat      = "Output format: auto, text, json or yaml"
	MsgFlagRestore     = "Restore the backup with this index without asking"
	MsgFlagKeepBackups = "Do not offer to restore a backup"
	MsgFlagTemplate    = "Print a commented configuration template instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/uninstall-long.txt
	msgUninstallLongRaw string
	MsgUninstallLong    = strings.TrimSpace(msgUninstallLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/restore-long.txt
	msgRestoreLongRaw string
	MsgRestoreLong    = strings.TrimSpace(msgRestoreLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
