package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/pathfinder/pkg/errors"
	"github.com/arthur-debert/pathfinder/pkg/logging"
	"github.com/arthur-debert/pathfinder/pkg/paths"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "PATHFINDER_"
	// EnvClassPath supplies the default class path
	EnvClassPath = "CLASSPATH"
)

// Load reads the configuration. An empty path looks for the user file in
// the XDG config directory and skips it when absent; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with a final layer of dotted keys, such as
// {"listing.order": "reverse"}
func LoadWithOverrides(path string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	known := envKeys(k.Keys())

	// 2. User file
	userFile, err := resolveUserFile(path)
	if err != nil {
		return nil, err
	}
	if userFile != "" {
		if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load config file").WithPath(userFile)
		}
		logger.Debug().Str("file", userFile).Msg("Loaded config file")
	}

	// 3. CLASSPATH
	if err := k.Load(env.Provider(EnvClassPath, ".", func(s string) string {
		if s != EnvClassPath {
			return ""
		}
		return "defaults.class_path"
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load CLASSPATH")
	}

	// 4. PATHFINDER_ variables naming a known key
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return known[strings.TrimPrefix(s, EnvPrefix)]
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Programmatic overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("order", string(cfg.Listing.Order)).
		Bool("archives", cfg.Archives.Enabled).
		Str("system_home", cfg.System.Home).
		Msg("Configuration loaded")
	return &cfg, nil
}

// resolveUserFile returns the file to load, empty when there is none
func resolveUserFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", errors.New(errors.ErrConfigLoad, "config file not found").WithPath(path)
			}
			return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot read config file").WithPath(path)
		}
		return path, nil
	}

	p, err := paths.New("")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot locate config directory")
	}
	candidate := p.ConfigFilePath()
	if _, err := os.Stat(candidate); err != nil {
		return "", nil
	}
	return candidate, nil
}

// envKeys maps the environment spelling of every known key, such as
// SEARCH_PATH_WARN_MISSING, to its dotted form
func envKeys(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[strings.ToUpper(strings.ReplaceAll(key, ".", "_"))] = key
	}
	return out
}
