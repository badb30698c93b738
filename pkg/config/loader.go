package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable retemplate reads
const EnvPrefix = "RETEMPLATE_"

// LoadOptions tells Load where to look for configuration
type LoadOptions struct {
	// SourceDir is searched for a project configuration file
	SourceDir string

	// ConfigFile, when set, replaces the project file lookup
	ConfigFile string

	// UserConfigFile overrides the XDG user config location; "-" disables it
	UserConfigFile string

	// Overrides are flat dotted keys applied last, typically changed flags
	Overrides map[string]interface{}
}

// Load merges all configuration layers and returns the validated result
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	knownKeys := k.Keys()

	// 2. User config
	userFile := opts.UserConfigFile
	if userFile == "" {
		userFile = paths.UserConfigPath()
	}
	if userFile != "-" {
		if _, err := os.Stat(userFile); err == nil {
			if err := loadFile(k, userFile); err != nil {
				return nil, err
			}
			logger.Debug().Str("path", userFile).Msg("Loaded user config")
		}
	}

	// 3. Project config
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("Loaded config file")
	} else if opts.SourceDir != "" {
		if path := FindProjectConfig(opts.SourceDir); path != "" {
			if err := loadFile(k, path); err != nil {
				return nil, err
			}
			logger.Debug().Str("path", path).Msg("Loaded project config")
		}
	}

	// 4. Environment
	envKeys := envKeyMap(knownKeys)
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[strings.ToLower(strings.TrimPrefix(s, EnvPrefix))]
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults without reading files or the environment
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k)
}

// FindProjectConfig returns the first project config file present in dir
func FindProjectConfig(dir string) string {
	for _, name := range paths.ProjectConfigFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
	}
	return nil
}

// envKeyMap maps "run_dry_run" style env suffixes to dotted keys. Keys contain
// underscores themselves, so the mapping is built from the known keys instead
// of a blind "_" to "." substitution.
func envKeyMap(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		m[strings.ReplaceAll(key, ".", "_")] = key
	}
	return m
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
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
	return &cfg, nil
}
