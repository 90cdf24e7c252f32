// Package conflicts decides which managed targets stand in the way of
// linking.
//
// A target conflicts when something is present at its path that the
// managed root does not own: a regular file, a directory where a file is
// expected, or a symlink pointing outside the managed root. A directory
// target that is a dangling symlink always conflicts.
//
// Whether a symlink points "inside" the managed root is decided by a
// Containment mode. The default, ContainmentSubstring, keeps the legacy
// heuristic: the managed root string must appear somewhere in the link
// target. It is approximate; a foreign path that happens to contain the
// root string is treated as managed. ContainmentPrefix compares canonical
// paths instead and is the stricter choice.
package conflicts
