package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/filesystem"
	"github.com/arthur-debert/retemplate/pkg/types"
)

// Descriptor and source rewrite modes
const (
	ModeLiteral = "literal"
	ModeXML     = "xml"
	ModeToken   = "token"
)

// Symlink policies for the clone stage
const (
	SymlinksPreserve = "preserve"
	SymlinksFollow   = "follow"
	SymlinksSkip     = "skip"
)

// Config is the fully merged retemplate configuration
type Config struct {
	Project    Project    `koanf:"project" toml:"project" yaml:"project" json:"project"`
	Paths      Paths      `koanf:"paths" toml:"paths" yaml:"paths" json:"paths"`
	Clone      Clone      `koanf:"clone" toml:"clone" yaml:"clone" json:"clone"`
	Descriptor Descriptor `koanf:"descriptor" toml:"descriptor" yaml:"descriptor" json:"descriptor"`
	Source     Source     `koanf:"source" toml:"source" yaml:"source" json:"source"`
	Relocate   Relocate   `koanf:"relocate" toml:"relocate" yaml:"relocate" json:"relocate"`
	Run        Run        `koanf:"run" toml:"run" yaml:"run" json:"run"`
}

// Coordinates identify a project: build group, artifact and source package
type Coordinates struct {
	Group    string `koanf:"group" toml:"group" yaml:"group" json:"group"`
	Artifact string `koanf:"artifact" toml:"artifact" yaml:"artifact" json:"artifact"`
	Package  string `koanf:"package" toml:"package" yaml:"package" json:"package"`
}

// Project holds the template coordinates and the ones to rewrite them to
type Project struct {
	Old Coordinates `koanf:"old" toml:"old" yaml:"old" json:"old"`
	New Coordinates `koanf:"new" toml:"new" yaml:"new" json:"new"`
}

// Paths locates the source and target directories
type Paths struct {
	Source string `koanf:"source" toml:"source" yaml:"source" json:"source"`
	Target string `koanf:"target" toml:"target" yaml:"target" json:"target"`
	Suffix string `koanf:"suffix" toml:"suffix" yaml:"suffix" json:"suffix"`
}

// Clone configures the directory copy
type Clone struct {
	Symlinks string   `koanf:"symlinks" toml:"symlinks" yaml:"symlinks" json:"symlinks"`
	Exclude  []string `koanf:"exclude" toml:"exclude" yaml:"exclude" json:"exclude"`
}

// Descriptor configures the build descriptor rewrite
type Descriptor struct {
	Filenames []string `koanf:"filenames" toml:"filenames" yaml:"filenames" json:"filenames"`
	Mode      string   `koanf:"mode" toml:"mode" yaml:"mode" json:"mode"`
}

// Source configures the package text rewrite
type Source struct {
	Extensions []string `koanf:"extensions" toml:"extensions" yaml:"extensions" json:"extensions"`
	Mode       string   `koanf:"mode" toml:"mode" yaml:"mode" json:"mode"`
}

// Relocate configures the package directory move
type Relocate struct {
	SourceRoots []string `koanf:"source_roots" toml:"source_roots" yaml:"source_roots" json:"source_roots"`
	PruneEmpty  bool     `koanf:"prune_empty" toml:"prune_empty" yaml:"prune_empty" json:"prune_empty"`
}

// Run holds the pipeline switches
type Run struct {
	Staging bool   `koanf:"staging" toml:"staging" yaml:"staging" json:"staging"`
	Strict  bool   `koanf:"strict" toml:"strict" yaml:"strict" json:"strict"`
	DryRun  bool   `koanf:"dry_run" toml:"dry_run" yaml:"dry_run" json:"dry_run"`
	Format  string `koanf:"format" toml:"format" yaml:"format" json:"format"`
}

// RenameConfig extracts the six project coordinates
func (c *Config) RenameConfig() types.RenameConfig {
	return types.RenameConfig{
		OldGroup:    c.Project.Old.Group,
		OldArtifact: c.Project.Old.Artifact,
		OldPackage:  c.Project.Old.Package,
		NewGroup:    c.Project.New.Group,
		NewArtifact: c.Project.New.Artifact,
		NewPackage:  c.Project.New.Package,
	}
}

// Validate checks values koanf cannot type-check
func (c *Config) Validate() error {
	var problems []string

	if missing := c.RenameConfig().MissingFields(); len(missing) > 0 {
		problems = append(problems, "missing "+strings.Join(missing, ", "))
	}
	if !oneOf(c.Descriptor.Mode, ModeLiteral, ModeXML) {
		problems = append(problems, fmt.Sprintf("descriptor.mode %q is not one of literal, xml", c.Descriptor.Mode))
	}
	if !oneOf(c.Source.Mode, ModeLiteral, ModeToken) {
		problems = append(problems, fmt.Sprintf("source.mode %q is not one of literal, token", c.Source.Mode))
	}
	if !oneOf(c.Clone.Symlinks, SymlinksPreserve, SymlinksFollow, SymlinksSkip) {
		problems = append(problems, fmt.Sprintf("clone.symlinks %q is not one of preserve, follow, skip", c.Clone.Symlinks))
	}
	if !oneOf(c.Run.Format, "auto", "term", "text", "json") {
		problems = append(problems, fmt.Sprintf("run.format %q is not one of auto, term, text, json", c.Run.Format))
	}
	if len(nonEmpty(c.Descriptor.Filenames)) == 0 {
		problems = append(problems, "descriptor.filenames is empty")
	}
	if len(nonEmpty(c.Source.Extensions)) == 0 {
		problems = append(problems, "source.extensions is empty")
	}
	if len(nonEmpty(c.Relocate.SourceRoots)) == 0 {
		problems = append(problems, "relocate.source_roots is empty")
	}
	for _, sr := range nonEmpty(c.Relocate.SourceRoots) {
		// roots are joined onto the working tree and must stay inside it
		if p := filepath.FromSlash(sr); filepath.IsAbs(p) || !filesystem.Within(".", p) {
			problems = append(problems, fmt.Sprintf("relocate.source_roots entry %q is not a relative path inside the project", sr))
		}
	}
	if c.Paths.Target == "" && c.Paths.Suffix == "" {
		problems = append(problems, "paths.suffix is empty and no paths.target is set")
	}

	if len(problems) > 0 {
		return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s", strings.Join(problems, "; ")).
			WithDetail("problems", problems)
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
