// Package backup saves conflicting files before dotstow removes them and
// brings them back on request.
//
// A backup set is one directory under home named
// .dotfiles_backup_<YYYYMMDD_HHMMSS>. It mirrors the home-relative layout
// of everything it saved and carries a manifest (.dotstow-manifest.yaml)
// recording what each item originally was, so that a foreign symlink is
// restored as a symlink rather than as a copy of its content.
//
// Copies are best effort: an unreadable item is logged and skipped, and its
// original is removed anyway. Removal failures abort. Sets are written once
// and only read afterwards.
package backup
