package paths

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	// BackupDirPrefix starts the name of every backup set under home
	BackupDirPrefix = ".dotfiles_backup_"

	// BackupTimeLayout is the 14-digit local timestamp suffix (YYYYMMDD_HHMMSS)
	BackupTimeLayout = "20060102_150405"

	// BackupManifestFile records what a backup set holds
	BackupManifestFile = ".dotstow-manifest.yaml"
)

// BackupDirName returns the backup directory name for t, at second granularity.
func BackupDirName(t time.Time) string {
	return BackupDirPrefix + t.Format(BackupTimeLayout)
}

// ParseBackupDirName extracts the timestamp from a backup directory name.
func ParseBackupDirName(name string) (time.Time, bool) {
	suffix, ok := strings.CutPrefix(name, BackupDirPrefix)
	if !ok || len(suffix) != len(BackupTimeLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(BackupTimeLayout, suffix, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BackupDir returns the absolute backup directory for t under home.
func (p *Paths) BackupDir(t time.Time) string {
	return filepath.Join(p.home, BackupDirName(t))
}
