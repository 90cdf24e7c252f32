package conflicts

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
)

// Containment selects how a symlink target is tested against the managed root.
type Containment string

const (
	// ContainmentSubstring accepts a link when the managed root string
	// appears anywhere in its (absolutized) target.
	ContainmentSubstring Containment = "substring"

	// ContainmentPrefix accepts a link only when its canonical target lies
	// under the canonical managed root.
	ContainmentPrefix Containment = "prefix"
)

// ParseContainment validates a containment mode name. Empty selects the default.
func ParseContainment(s string) (Containment, error) {
	switch Containment(strings.ToLower(strings.TrimSpace(s))) {
	case "", ContainmentSubstring:
		return ContainmentSubstring, nil
	case ContainmentPrefix:
		return ContainmentPrefix, nil
	default:
		return "", errors.Newf(errors.ErrConfigValid, "unknown containment mode %q (want substring or prefix)", s)
	}
}

// PointsInto reports whether a symlink at linkPath with the raw target
// linkTarget points into root under the given mode.
func PointsInto(mode Containment, root, linkPath, linkTarget string) bool {
	target := absTarget(linkPath, linkTarget)

	if mode == ContainmentPrefix {
		return within(canonical(root), canonical(target))
	}
	return strings.Contains(target, root)
}

// absTarget makes a relative link target absolute against the link's own
// directory. It is lexical; nothing is resolved on disk.
func absTarget(linkPath, linkTarget string) string {
	if filepath.IsAbs(linkTarget) {
		return filepath.Clean(linkTarget)
	}
	return filepath.Join(filepath.Dir(linkPath), linkTarget)
}

// canonical resolves symlinks when the path exists and falls back to the
// cleaned path otherwise, so dangling targets can still be compared.
func canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
