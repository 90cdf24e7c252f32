// Package types defines the core types and interfaces used throughout dotstow.
// This includes the filesystem seam (FS), the probe and conflict model
// (ProbeResult, ConflictRecord), the managed layout (LinkGroup, ManagedTarget)
// and the decision interfaces injected into workflows (Confirmer, Prompter).
package types
