package backup

import (
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"gopkg.in/yaml.v3"
)

const manifestVersion = 1

// Manifest describes the content of a backup set.
type Manifest struct {
	Version     int            `yaml:"version"`
	CreatedAt   time.Time      `yaml:"created_at"`
	ManagedRoot string         `yaml:"managed_root,omitempty"`
	Items       []ManifestItem `yaml:"items"`
}

// ManifestItem is one backed up path.
type ManifestItem struct {
	// Path is relative to home and to the set directory.
	Path string `yaml:"path"`

	// Kind is the conflict kind observed when the item was saved.
	Kind types.ConflictKind `yaml:"kind"`

	// LinkTarget is the raw symlink target for link conflicts.
	LinkTarget string `yaml:"link_target,omitempty"`

	// Copied reports whether content was saved under the set.
	Copied bool `yaml:"copied"`

	// Error holds the copy failure, if any.
	Error string `yaml:"error,omitempty"`
}

func writeManifest(fsys types.FS, setPath string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode backup manifest")
	}
	path := filepath.Join(setPath, paths.BackupManifestFile)
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrBackupCopy, "failed to write backup manifest %s", path)
	}
	return nil
}

// readManifest returns nil without error when the set has no manifest.
func readManifest(fsys types.FS, setPath string) (*Manifest, error) {
	path := filepath.Join(setPath, paths.BackupManifestFile)
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrRestore, "failed to read backup manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRestore, "failed to parse backup manifest %s", path)
	}
	return &m, nil
}
