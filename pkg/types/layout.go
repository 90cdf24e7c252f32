package types

// LinkGroup is a named bundle of managed paths that the symlink manager
// stows and unstows as one unit. Groups are independent of each other.
type LinkGroup struct {
	// Name is the logical group (shell, prompt, terminal).
	Name string `koanf:"name" toml:"name" yaml:"name"`

	// Package is the directory under the managed root holding the group's files.
	Package string `koanf:"package" toml:"package" yaml:"package"`

	// Files are paths relative to the target root (home).
	Files []string `koanf:"files" toml:"files" yaml:"files"`

	// Directories are paths relative to the target root that the group may
	// own as a whole (for example a folded ~/.config/alacritty link).
	Directories []string `koanf:"directories" toml:"directories,omitempty" yaml:"directories,omitempty"`

	// Optional groups warn on failure instead of failing the run.
	Optional bool `koanf:"optional" toml:"optional" yaml:"optional"`
}

// ManagedTarget is one path in the home tree that dotstow cares about.
type ManagedTarget struct {
	// Path is the absolute path under the target root.
	Path string

	// RelPath is Path relative to the target root.
	RelPath string

	// Group names the LinkGroup the target belongs to.
	Group string

	// SourceRoot is the managed root the target's symlink should originate from.
	SourceRoot string

	// IsDir marks a directory target.
	IsDir bool
}
