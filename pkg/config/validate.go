package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/conflicts"
	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/linker"
)

// Validate checks values the rest of dotstow relies on.
func (c *Config) Validate() error {
	if _, err := conflicts.ParseContainment(c.Link.Containment); err != nil {
		return err
	}
	if !linker.ValidName(c.Link.Manager) {
		return errors.Newf(errors.ErrConfigValid, "link.manager: unknown link manager %q", c.Link.Manager).
			WithDetail("valid", []string{linker.NameStow, linker.NameNative, linker.NameAuto})
	}
	if c.Shell.Change && c.Shell.Name == "" {
		return errors.New(errors.ErrConfigValid, "shell.name is required when shell.change is enabled")
	}
	if c.Prompt.Enabled && (c.Prompt.Binary == "" || c.Prompt.InstallURL == "") {
		return errors.New(errors.ErrConfigValid, "prompt.binary and prompt.install_url are required when prompt.enabled is set")
	}
	if c.Font.Enabled && (c.Font.Family == "" || c.Font.URL == "") {
		return errors.New(errors.ErrConfigValid, "font.family and font.url are required when font.enabled is set")
	}

	if len(c.Groups) == 0 {
		return errors.New(errors.ErrConfigValid, "at least one link group is required")
	}
	seen := make(map[string]bool)
	for i, g := range c.Groups {
		if g.Name == "" {
			return errors.Newf(errors.ErrConfigValid, "groups[%d]: name is required", i)
		}
		if seen[g.Name] {
			return errors.Newf(errors.ErrConfigValid, "groups: duplicate group name %q", g.Name)
		}
		seen[g.Name] = true

		if g.Package == "" || strings.ContainsRune(g.Package, filepath.Separator) {
			return errors.Newf(errors.ErrConfigValid, "group %s: package must be a single directory name", g.Name)
		}
		if len(g.Files) == 0 && len(g.Directories) == 0 {
			return errors.Newf(errors.ErrConfigValid, "group %s: no files or directories", g.Name)
		}
		for _, rel := range append(append([]string{}, g.Files...), g.Directories...) {
			if !validRelPath(rel) {
				return errors.Newf(errors.ErrConfigValid, "group %s: %q must be relative to home and stay inside it", g.Name, rel)
			}
		}
	}
	return nil
}

func validRelPath(rel string) bool {
	if rel == "" || filepath.IsAbs(rel) {
		return false
	}
	clean := filepath.Clean(rel)
	return clean != "." && clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
