package types

// ProbeKind classifies what sits at a filesystem path.
type ProbeKind int

const (
	KindAbsent ProbeKind = iota
	KindRegularFile
	KindDirectory
	KindSymlink
)

func (k ProbeKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindRegularFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// ProbeResult is the outcome of inspecting one path without following it.
type ProbeResult struct {
	Path string
	Kind ProbeKind

	// LinkTarget is the raw target string of a symlink, as stored in the link.
	LinkTarget string

	// TargetExists reports whether a symlink's target resolves.
	TargetExists bool

	// TargetIsDir reports whether a symlink resolves to a directory.
	TargetIsDir bool
}

// IsDangling reports whether the path is a symlink whose target is gone.
func (r ProbeResult) IsDangling() bool {
	return r.Kind == KindSymlink && !r.TargetExists
}
