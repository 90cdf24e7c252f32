package backup

import (
	"iter"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// Catalog finds backup sets under home.
type Catalog struct {
	fs     types.FS
	home   string
	logger zerolog.Logger
}

// NewCatalog creates a Catalog for home.
func NewCatalog(fsys types.FS, home string) *Catalog {
	return &Catalog{
		fs:     fsys,
		home:   home,
		logger: logging.GetLogger("backup.catalog"),
	}
}

// All yields the backup sets under home sorted by name, which is also
// chronological order. The directory is read each time the sequence is
// ranged over, so the sequence can be restarted and sees new sets.
func (c *Catalog) All() iter.Seq[Set] {
	return func(yield func(Set) bool) {
		entries, err := c.fs.ReadDir(c.home)
		if err != nil {
			c.logger.Warn().Err(err).Str("home", c.home).Msg("Cannot list home directory for backups")
			return
		}

		// ReadDir already sorts by name
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			ts, ok := paths.ParseBackupDirName(entry.Name())
			if !ok {
				continue
			}
			set := Set{
				Name:      entry.Name(),
				Path:      filepath.Join(c.home, entry.Name()),
				Timestamp: ts,
			}
			if !yield(set) {
				return
			}
		}
	}
}

// List collects All into a slice.
func (c *Catalog) List() []Set {
	return slices.Collect(c.All())
}

// Manifest returns the manifest of set, or nil for sets written without one.
func (c *Catalog) Manifest(set Set) (*Manifest, error) {
	return readManifest(c.fs, set.Path)
}

// Select resolves a 1-based index typed by the user. Anything that is not
// a number within range is a SELECTION error.
func Select(input string, sets []Set) (Set, error) {
	trimmed := strings.TrimSpace(input)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return Set{}, errors.Newf(errors.ErrSelection, "invalid selection %q: not a number", trimmed).
			WithDetail("input", input)
	}
	if n < 1 || n > len(sets) {
		return Set{}, errors.Newf(errors.ErrSelection, "invalid selection %d: choose between 1 and %d", n, len(sets)).
			WithDetail("input", input)
	}
	return sets[n-1], nil
}
