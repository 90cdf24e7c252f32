// Package config handles configuration management for dotstow.
// It layers embedded defaults, the user config file, the managed root's
// .dotstow.toml, DOTSTOW_* environment variables and command-line flags.
package config
