package conflicts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContainment(t *testing.T) {
	mode, err := ParseContainment("")
	require.NoError(t, err)
	assert.Equal(t, ContainmentSubstring, mode)

	mode, err = ParseContainment(" Prefix ")
	require.NoError(t, err)
	assert.Equal(t, ContainmentPrefix, mode)

	_, err = ParseContainment("realpath")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestPointsInto_Substring(t *testing.T) {
	root := "/home/u/dotfiles"

	tests := []struct {
		name   string
		link   string
		target string
		want   bool
	}{
		{"absolute into root", "/home/u/.zshrc", "/home/u/dotfiles/zsh/.zshrc", true},
		{"relative stow link", "/home/u/.zshrc", "dotfiles/zsh/.zshrc", true},
		{"relative from nested dir", "/home/u/.config/starship.toml", "../dotfiles/starship/.config/starship.toml", true},
		{"foreign", "/home/u/.zshrc", "/opt/other/.zshrc", false},
		// The heuristic accepts any target containing the root string.
		{"substring false positive", "/home/u/.zshrc", "/home/u/dotfiles-old/.zshrc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsInto(ContainmentSubstring, root, tt.link, tt.target))
		})
	}
}

func TestPointsInto_Prefix(t *testing.T) {
	root := "/home/u/dotfiles"

	assert.True(t, PointsInto(ContainmentPrefix, root, "/home/u/.zshrc", "/home/u/dotfiles/zsh/.zshrc"))
	assert.True(t, PointsInto(ContainmentPrefix, root, "/home/u/.zshrc", "dotfiles/zsh/.zshrc"))
	assert.False(t, PointsInto(ContainmentPrefix, root, "/home/u/.zshrc", "/home/u/dotfiles-old/.zshrc"))
	assert.False(t, PointsInto(ContainmentPrefix, root, "/home/u/.zshrc", "/home/u/.zshrc.d"))
}

func TestPointsInto_PrefixResolvesSymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real-dotfiles")
	require.NoError(t, os.MkdirAll(filepath.Join(real, "zsh"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "zsh", ".zshrc"), nil, 0644))
	alias := filepath.Join(dir, "dotfiles")
	require.NoError(t, os.Symlink(real, alias))

	// Link written against the real path, root configured through the alias
	assert.True(t, PointsInto(ContainmentPrefix, alias, filepath.Join(dir, ".zshrc"), filepath.Join(real, "zsh", ".zshrc")))
	assert.False(t, PointsInto(ContainmentSubstring, alias, filepath.Join(dir, ".zshrc"), filepath.Join(real, "zsh", ".zshrc")))
}
