package types

// ConflictKind describes why a managed target is in the way.
type ConflictKind string

const (
	ConflictRegular     ConflictKind = "regular"
	ConflictForeignLink ConflictKind = "foreign-link"
	ConflictDanglingDir ConflictKind = "dangling-dir"
	ConflictDirectory   ConflictKind = "directory"
	ConflictUnprobeable ConflictKind = "unprobeable"
)

// ConflictRecord is produced by the classifier for one target in conflict.
// It lives only for the duration of a run.
type ConflictRecord struct {
	Target ManagedTarget
	Kind   ConflictKind

	// ForeignTarget is the symlink target for link conflicts.
	ForeignTarget string

	// Err holds the probe failure for unprobeable targets.
	Err error
}

// IsLink reports whether the conflicting item is itself a symlink.
func (c ConflictRecord) IsLink() bool {
	return c.Kind == ConflictForeignLink || c.Kind == ConflictDanglingDir
}
