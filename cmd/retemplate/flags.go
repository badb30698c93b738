package retemplate

import (
	"fmt"

	"github.com/arthur-debert/retemplate/pkg/config"
	"github.com/arthur-debert/retemplate/pkg/paths"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagKeys maps scalar flags to the configuration key they override
var flagKeys = map[string]string{
	"source":          "paths.source",
	"target":          "paths.target",
	"suffix":          "paths.suffix",
	"old-group":       "project.old.group",
	"old-artifact":    "project.old.artifact",
	"old-package":     "project.old.package",
	"new-group":       "project.new.group",
	"new-artifact":    "project.new.artifact",
	"new-package":     "project.new.package",
	"descriptor-mode": "descriptor.mode",
	"source-mode":     "source.mode",
	"symlinks":        "clone.symlinks",
	"prune-empty":     "relocate.prune_empty",
	"strict":          "run.strict",
	"dry-run":         "run.dry_run",
}

// listFlagKeys maps repeatable flags to list keys; given values replace the list
var listFlagKeys = map[string]string{
	"exclude":     "clone.exclude",
	"source-root": "relocate.source_roots",
}

// addRunFlags registers the flags that shape the configuration of a run
func addRunFlags(flags *pflag.FlagSet) {
	flags.String("config", "", MsgFlagConfig)
	flags.String("source", "", MsgFlagSource)
	flags.String("target", "", MsgFlagTarget)
	flags.String("suffix", "", MsgFlagSuffix)
	flags.String("old-group", "", MsgFlagOldGroup)
	flags.String("old-artifact", "", MsgFlagOldArtifact)
	flags.String("old-package", "", MsgFlagOldPackage)
	flags.String("new-group", "", MsgFlagNewGroup)
	flags.String("new-artifact", "", MsgFlagNewArtifact)
	flags.String("new-package", "", MsgFlagNewPackage)
	flags.String("descriptor-mode", "", MsgFlagDescriptorMode)
	flags.String("source-mode", "", MsgFlagSourceMode)
	flags.String("symlinks", "", MsgFlagSymlinks)
	flags.StringArray("exclude", nil, MsgFlagExclude)
	flags.StringArray("source-root", nil, MsgFlagSourceRoot)
	flags.Bool("prune-empty", false, MsgFlagPruneEmpty)
	flags.Bool("no-staging", false, MsgFlagNoStaging)
	flags.Bool("strict", false, MsgFlagStrict)
	flags.Bool("dry-run", false, MsgFlagDryRun)
}

// flagOverrides collects the changed flags as configuration overrides.
// Unchanged flags are left out so files and the environment still apply.
func flagOverrides(flags *pflag.FlagSet) map[string]interface{} {
	overrides := make(map[string]interface{})

	flags.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			if f.Value.Type() == "bool" {
				overrides[key] = f.Value.String() == "true"
			} else {
				overrides[key] = f.Value.String()
			}
			return
		}
		if key, ok := listFlagKeys[f.Name]; ok {
			values, err := flags.GetStringArray(f.Name)
			if err == nil {
				overrides[key] = values
			}
			return
		}
		if f.Name == "no-staging" {
			overrides["run.staging"] = f.Value.String() != "true"
		}
	})

	return overrides
}

// loadConfig merges the configuration layers for cmd. extra overrides are
// applied on top of the flag overrides.
func loadConfig(cmd *cobra.Command, extra map[string]interface{}) (*config.Config, error) {
	flags := cmd.Flags()

	source, _ := flags.GetString("source")
	if source == "" {
		wd, err := paths.WorkingDir()
		if err != nil {
			return nil, err
		}
		source = wd
	}
	configFile, _ := flags.GetString("config")

	overrides := flagOverrides(flags)
	for k, v := range extra {
		overrides[k] = v
	}

	cfg, err := config.Load(config.LoadOptions{
		SourceDir:  source,
		ConfigFile: configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// sourceDir returns the template directory named by --source, or the
// working directory
func sourceDir(cmd *cobra.Command) (string, error) {
	source, _ := cmd.Flags().GetString("source")
	if source != "" {
		return source, nil
	}
	return paths.WorkingDir()
}
