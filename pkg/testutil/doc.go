// Package testutil provides utilities for testing dotstow components.
//
// Key components:
//   - TestEnvironment: an isolated temp directory holding a fake HOME and a
//     managed root, with helpers to lay out files and symlinks on both sides
//   - FaultFS: a types.FS wrapper that fails chosen operations on chosen paths
//   - StandardGroups: the shell/prompt/terminal layout used across tests
//
// Every environment uses the real filesystem: the code under test depends
// on real symlink semantics (Lstat, dangling links), which in-memory
// filesystems do not model.
package testutil
