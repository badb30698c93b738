package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/filesystem"
	"github.com/arthur-debert/retemplate/pkg/types"
)

const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "retemplate"

	// UserConfigFile is the name of the per-user configuration file
	UserConfigFile = "config.toml"

	// DefaultTargetSuffix is appended to the source directory to build the target
	DefaultTargetSuffix = "-new"

	// EnvConfigDir overrides the XDG config directory for retemplate
	EnvConfigDir = "RETEMPLATE_CONFIG_DIR"
)

// ProjectConfigFiles are looked up in the source directory, first match wins
var ProjectConfigFiles = []string{".retemplate.toml", "retemplate.toml", ".retemplate.yaml", ".retemplate.yml"}

// getwd is swapped in tests to simulate an unresolvable working directory
var getwd = os.Getwd

// WorkingDir returns the absolute process working directory
func WorkingDir() (string, error) {
	wd, err := getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrWorkdir, "cannot resolve the working directory")
	}
	if strings.TrimSpace(wd) == "" {
		return "", errors.New(errors.ErrWorkdir, "working directory is empty")
	}
	return filepath.Abs(wd)
}

// Resolve builds the ProjectPaths for a run. An empty source means the
// working directory, an empty target means source + suffix.
func Resolve(source, target, suffix string) (types.ProjectPaths, error) {
	var p types.ProjectPaths

	if source == "" {
		wd, err := WorkingDir()
		if err != nil {
			return p, err
		}
		source = wd
	}
	absSource, err := filepath.Abs(expandHome(source))
	if err != nil {
		return p, errors.Wrapf(err, errors.ErrWorkdir, "failed to get absolute path for %s", source)
	}
	p.Source = absSource

	if target == "" {
		if suffix == "" {
			return p, errors.New(errors.ErrConfigValid, "target suffix cannot be empty when no target is given")
		}
		target = absSource + suffix
	}
	absTarget, err := filepath.Abs(expandHome(target))
	if err != nil {
		return p, errors.Wrapf(err, errors.ErrConfigValid, "failed to get absolute path for %s", target)
	}
	p.Target = absTarget

	if filesystem.Within(p.Source, p.Target) {
		return p, errors.Newf(errors.ErrConfigValid, "target %s must not be inside the source %s", p.Target, p.Source)
	}
	if filesystem.Within(p.Target, p.Source) {
		return p, errors.Newf(errors.ErrConfigValid, "source %s must not be inside the target %s", p.Source, p.Target)
	}

	return p, nil
}

// ConfigDir returns the per-user configuration directory
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// UserConfigPath returns the path of the per-user configuration file
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), UserConfigFile)
}

// StagingPrefix is the name prefix of the hidden directory a run builds the
// new project in before it is renamed to the target.
func StagingPrefix(target string) string {
	return "." + filepath.Base(target) + ".staging-"
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
