package config

import (
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Marshal renders the effective configuration as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return data, nil
}

// GenerateConfigContent returns the defaults with every value commented
// out, as a starting point for a user config file.
func GenerateConfigContent() string {
	lines := strings.Split(DefaultsContent(), "\n")
	for i, line := range lines {
		if isSettingLine(line) {
			lines[i] = "# " + line
		}
	}
	return strings.Join(lines, "\n")
}

// isSettingLine reports whether line assigns a value or opens a [[groups]]
// entry. Plain [section] headers stay active so uncommenting a key is enough.
func isSettingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "", strings.HasPrefix(trimmed, "#"):
		return false
	case strings.HasPrefix(trimmed, "[["):
		return true
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		return false
	}
	return true
}
