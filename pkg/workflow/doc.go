// Package workflow sequences the install, uninstall and status flows.
//
// Every collaborator is an interface so the flows run in tests without a
// terminal, apt, stow or the network. Confirmations are injected as a
// types.Confirmer; a "No" before a destructive step ends the run with
// StatusDeclined and no error.
package workflow
