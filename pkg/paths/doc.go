// Package paths provides centralized path handling for dotstow.
//
// It resolves the managed root (the dotfiles checkout that owns every
// symlink dotstow creates), the target root (the user's home), the XDG
// directories used for configuration, logs and fonts, and the naming
// scheme of backup directories.
//
// The managed root is always an explicit value once resolved; nothing
// downstream rediscovers it from the running binary's location.
package paths
