package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Render serializes the configuration as toml, yaml or json
func Render(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "", "toml":
		return toml.Marshal(cfg)
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	case "json":
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown config format %q (toml, yaml, json)", format)
	}
}

// WriteProjectConfig writes the commented defaults as dir/.retemplate.toml.
// It refuses to replace an existing file.
func WriteProjectConfig(dir string) (string, error) {
	path := filepath.Join(dir, ".retemplate.toml")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return path, errors.Newf(errors.ErrAlreadyExists, "%s already exists", path)
		}
		return path, errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", path)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprint(f, DefaultConfigContent()); err != nil {
		return path, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return path, nil
}
