// Package runner is the seam between dotstow and the programs it drives:
// apt, stow, chsh, fc-cache and the starship install script.
//
// ExecRunner runs a single program with a timeout and captured output.
// ScriptRunner interprets a shell snippet in-process, so pipelines such as
// `curl ... | sh` do not depend on the user's login shell.
package runner
