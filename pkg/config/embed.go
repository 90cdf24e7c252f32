package config

import (
	_ "embed"

	"github.com/arthur-debert/dotstow/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded defaults file.
func DefaultsContent() string {
	return string(defaultConfig)
}

// bytesProvider feeds raw TOML to koanf; the parser decodes it.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "bytes provider requires a parser")
}
