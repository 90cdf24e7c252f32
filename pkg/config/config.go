package config

import "github.com/arthur-debert/dotstow/pkg/types"

// Config is the effective dotstow configuration.
type Config struct {
	Paths    Paths             `koanf:"paths" toml:"paths"`
	Link     Link              `koanf:"link" toml:"link"`
	Packages Packages          `koanf:"packages" toml:"packages"`
	Prompt   Prompt            `koanf:"prompt" toml:"prompt"`
	Font     Font              `koanf:"font" toml:"font"`
	Shell    Shell             `koanf:"shell" toml:"shell"`
	Groups   []types.LinkGroup `koanf:"groups" toml:"groups"`

	// Sources lists the files that contributed, in load order.
	Sources []string `koanf:"-" toml:"-"`
}

// Paths locates the managed root.
type Paths struct {
	Root string `koanf:"root" toml:"root"`
}

// Link selects and tunes the link manager.
type Link struct {
	Manager     string `koanf:"manager" toml:"manager"`
	Strict      bool   `koanf:"strict" toml:"strict"`
	Containment string `koanf:"containment" toml:"containment"`
}

// Packages lists apt packages. Required failures abort install; optional
// failures warn.
type Packages struct {
	Update   bool     `koanf:"update" toml:"update"`
	UseSudo  bool     `koanf:"use_sudo" toml:"use_sudo"`
	Required []string `koanf:"required" toml:"required"`
	Optional []string `koanf:"optional" toml:"optional"`
}

// Prompt configures the starship installer.
type Prompt struct {
	Enabled    bool   `koanf:"enabled" toml:"enabled"`
	Binary     string `koanf:"binary" toml:"binary"`
	InstallURL string `koanf:"install_url" toml:"install_url"`
	BinDir     string `koanf:"bin_dir" toml:"bin_dir"`
}

// Font configures the Nerd Font download.
type Font struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Family  string `koanf:"family" toml:"family"`
	URL     string `koanf:"url" toml:"url"`
}

// Shell configures the login shell change.
type Shell struct {
	Change     bool   `koanf:"change" toml:"change"`
	Name       string `koanf:"name" toml:"name"`
	Fallback   string `koanf:"fallback" toml:"fallback"`
	ShellsFile string `koanf:"shells_file" toml:"shells_file"`
}

// Group returns the group called name.
func (c *Config) Group(name string) (types.LinkGroup, bool) {
	for _, g := range c.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return types.LinkGroup{}, false
}
