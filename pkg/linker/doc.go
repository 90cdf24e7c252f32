// Package linker applies and removes link groups.
//
// A Linker turns one LinkGroup into symlinks under home. StowLinker shells
// out to GNU stow; NativeLinker does the same with direct filesystem calls
// and is used when stow is missing. Neither overwrites an existing item.
//
// Applier runs groups in order, treats optional groups as warnings and
// verifies every linked target afterwards. Unlinker is the inverse.
package linker
