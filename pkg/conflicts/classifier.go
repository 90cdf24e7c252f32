package conflicts

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/probe"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// Classifier scans managed targets for conflicts.
type Classifier struct {
	fs     types.FS
	prober *probe.Prober
	root   string
	mode   Containment
	logger zerolog.Logger
}

// New creates a Classifier for targets owned by managedRoot.
func New(fsys types.FS, managedRoot string, mode Containment) *Classifier {
	if mode == "" {
		mode = ContainmentSubstring
	}
	return &Classifier{
		fs:     fsys,
		prober: probe.New(fsys),
		root:   filepath.Clean(managedRoot),
		mode:   mode,
		logger: logging.GetLogger("conflicts"),
	}
}

// Root returns the managed root the classifier checks against.
func (c *Classifier) Root() string {
	return c.root
}

// Mode returns the containment mode in use.
func (c *Classifier) Mode() Containment {
	return c.mode
}

// IsManaged reports whether a symlink at linkPath with target linkTarget
// belongs to the managed root.
func (c *Classifier) IsManaged(linkPath, linkTarget string) bool {
	return PointsInto(c.mode, c.root, linkPath, linkTarget)
}

// Scan classifies targets and returns the conflicts in target order. It
// never touches the filesystem beyond reading it.
func (c *Classifier) Scan(targets []types.ManagedTarget) []types.ConflictRecord {
	var records []types.ConflictRecord

	// Directory targets already accounted for (as a managed link or as a
	// conflict) cover every target beneath them.
	var covered []string

	for _, target := range targets {
		if isCovered(covered, target.Path) {
			c.logger.Debug().Str("path", target.Path).Msg("Target covered by directory target, skipping")
			continue
		}

		record, conflict, cover := c.classify(target)
		if cover {
			covered = append(covered, target.Path)
		}
		if conflict {
			c.logger.Info().
				Str("path", target.Path).
				Str("kind", string(record.Kind)).
				Str("foreignTarget", record.ForeignTarget).
				Msg("Conflict detected")
			records = append(records, record)
		}
	}

	return records
}

// classify returns the record, whether it is a conflict, and whether the
// target covers its subtree.
func (c *Classifier) classify(target types.ManagedTarget) (types.ConflictRecord, bool, bool) {
	record := types.ConflictRecord{Target: target}

	// A folded directory link above the target (stow turning a missing
	// ~/.config into one link) means the target is the managed file itself.
	if link, ok := c.managedAncestor(target); ok {
		c.logger.Debug().
			Str("path", target.Path).
			Str("link", link.Path).
			Msg("Target reached through a managed directory link")
		return record, false, target.IsDir
	}

	result, err := c.prober.Probe(target.Path)
	if err != nil {
		// Unknown state is treated as a conflict; backup then decides what
		// can be saved.
		c.logger.Warn().Err(err).Str("path", target.Path).Msg("Cannot inspect target, assuming conflict")
		record.Kind = types.ConflictUnprobeable
		record.Err = err
		return record, true, target.IsDir
	}

	switch result.Kind {
	case types.KindAbsent:
		return record, false, false

	case types.KindRegularFile:
		record.Kind = types.ConflictRegular
		return record, true, false

	case types.KindDirectory:
		if target.IsDir {
			// A real directory is fine; its file targets are checked one by one.
			return record, false, false
		}
		record.Kind = types.ConflictDirectory
		return record, true, false

	case types.KindSymlink:
		record.ForeignTarget = result.LinkTarget
		if target.IsDir && result.IsDangling() {
			record.Kind = types.ConflictDanglingDir
			return record, true, true
		}
		if !c.IsManaged(target.Path, result.LinkTarget) {
			record.Kind = types.ConflictForeignLink
			return record, true, target.IsDir
		}
		record.ForeignTarget = ""
		return record, false, target.IsDir
	}

	return record, false, false
}

// managedAncestor returns the nearest symlink above target when it points
// into the managed root. The nearest symlink decides: a foreign link closer
// to the target hides any managed link further up.
func (c *Classifier) managedAncestor(target types.ManagedTarget) (Link, bool) {
	home := targetHome(target)
	if home == "" {
		return Link{}, false
	}
	link, found, err := NearestLink(c.fs, home, filepath.Dir(target.Path))
	if err != nil {
		c.logger.Warn().Err(err).Str("path", target.Path).Msg("Cannot inspect parents of target")
		return Link{}, false
	}
	if !found || !c.IsManaged(link.Path, link.Target) {
		return Link{}, false
	}
	return link, true
}

// targetHome recovers the target root from a target's absolute and
// relative paths.
func targetHome(target types.ManagedTarget) string {
	rel := filepath.Clean(target.RelPath)
	path := filepath.Clean(target.Path)
	if rel == "." || !strings.HasSuffix(path, string(filepath.Separator)+rel) {
		return ""
	}
	return strings.TrimSuffix(path, string(filepath.Separator)+rel)
}

func isCovered(covered []string, path string) bool {
	for _, dir := range covered {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
