package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. DOTSTOW_LINK_STRICT sets
// link.strict and DOTSTOW_PACKAGES_USE_SUDO sets packages.use_sudo: the
// first underscore separates section from key.
const EnvPrefix = "DOTSTOW_"

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// UserFile is an explicit config file; it must exist.
	UserFile string

	// DefaultUserFile is read when present and UserFile is empty.
	DefaultUserFile string

	// ResolveRoot turns the configured paths.root (possibly empty) into the
	// managed root. The root's .dotstow.toml is loaded when present. Nil
	// skips the root layer.
	ResolveRoot func(configured string) (string, error)

	// Overrides are flat keys ("link.strict") set from flags.
	Overrides map[string]interface{}
}

// Load builds the configuration from every layer, later layers winning:
// embedded defaults, user file, root file, environment, overrides.
// Lists are replaced, not appended.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	base := koanf.New(".")
	if err := base.Load(bytesProvider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	var sources []string
	userFile, required := opts.UserFile, true
	if userFile == "" {
		userFile, required = opts.DefaultUserFile, false
	}
	if loaded, err := loadFile(base, userFile, required); err != nil {
		return nil, err
	} else if loaded {
		sources = append(sources, userFile)
	}

	envK := koanf.New(".")
	if err := envK.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read environment")
	}
	overK := koanf.New(".")
	if err := overK.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
	}

	k, root := base, ""
	if opts.ResolveRoot != nil {
		configured := firstString("paths.root", overK, envK, base)
		resolved, err := opts.ResolveRoot(configured)
		if err != nil {
			return nil, err
		}
		root = resolved

		k = base.Copy()
		rootFile := paths.RootConfigPathFor(root)
		if loaded, err := loadFile(k, rootFile, false); err != nil {
			return nil, err
		} else if loaded {
			sources = append(sources, rootFile)
		}
	}

	if err := k.Merge(envK); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge environment")
	}
	if err := k.Merge(overK); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to merge flag overrides")
	}
	if root != "" {
		if err := k.Set("paths.root", root); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to record managed root")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Strs("sources", sources).Str("root", cfg.Paths.Root).Msg("Configuration loaded")
	return cfg, nil
}

// Default returns the embedded defaults alone.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(bytesProvider(defaultConfig), toml.Parser()); err != nil {
		panic("embedded defaults do not parse: " + err.Error())
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic("embedded defaults do not decode: " + err.Error())
	}
	return cfg
}

func loadFile(k *koanf.Koanf, path string, required bool) (bool, error) {
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path)
	}

	// Each file replaces whole lists, so it is parsed on its own and merged.
	fileK := koanf.New(".")
	if err := fileK.Load(file.Provider(path), toml.Parser()); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path).
			WithDetail("path", path)
	}
	if err := k.Merge(fileK); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to merge config file %s", path)
	}
	return true, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}

// envKey maps DOTSTOW_SECTION_SOME_KEY to section.some_key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}

func firstString(key string, layers ...*koanf.Koanf) string {
	for _, k := range layers {
		if v := k.String(key); v != "" {
			return v
		}
	}
	return ""
}
