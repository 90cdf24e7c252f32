// Package system wraps the host collaborators dotstow relies on: the apt
// package manager, the login shell, user fonts and the starship prompt.
// Every external program goes through a runner.Runner.
package system
