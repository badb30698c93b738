// cmd/retemplate/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: OS filesystem (t.TempDir), embedded defaults
// PURPOSE: Drive the command line end to end: flags, config layers, output and exit codes

package retemplate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/retemplate/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliPom = `<project>
  <groupId>com.zygh</groupId>
  <artifactId>project-template</artifactId>
</project>
`

// setupTemplate writes a small template project and isolates the user config
func setupTemplate(t *testing.T) (afero.Fs, string) {
	t.Helper()
	t.Setenv("RETEMPLATE_CONFIG_DIR", t.TempDir())

	fs := afero.NewOsFs()
	src := filepath.Join(t.TempDir(), "tpl")
	testutil.WriteTree(t, fs, src, testutil.FileTree{
		"pom.xml": cliPom,
		"src": testutil.FileTree{"main": testutil.FileTree{"java": testutil.FileTree{
			"com": testutil.FileTree{"zygh": testutil.FileTree{"project": testutil.FileTree{
				"App.java": "package com.zygh.project;\n\npublic class App {}\n",
			}}},
		}}},
	})
	return fs, src
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_CreatesProject(t *testing.T) {
	fs, src := setupTemplate(t)

	code, stdout, stderr := execute(t,
		"--source", src,
		"--new-group", "org.acme",
		"--new-artifact", "billing",
		"--new-package", "org.acme.billing",
		"--format", "text",
	)
	require.Equal(t, 0, code, stderr)

	target := src + "-new"
	assert.Contains(t, stdout, "New project created at "+target)
	assert.Contains(t, stdout, "relocated: src/main/java/com/zygh/project -> src/main/java/org/acme/billing")

	testutil.AssertFileContent(t, fs, filepath.Join(target, "src/main/java/org/acme/billing/App.java"),
		"package org.acme.billing;\n\npublic class App {}\n")
	testutil.AssertFileContent(t, fs, filepath.Join(target, "pom.xml"), `<project>
  <groupId>org.acme</groupId>
  <artifactId>billing</artifactId>
</project>
`)
	testutil.AssertFileContent(t, fs, filepath.Join(src, "pom.xml"), cliPom)
}

func TestRun_ProjectConfigFile(t *testing.T) {
	fs, src := setupTemplate(t)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(src, ".retemplate.toml"),
		[]byte("[project.new]\ngroup = \"io.example\"\npackage = \"io.example.app\"\n"), 0644))

	target := filepath.Join(filepath.Dir(src), "app")
	code, _, stderr := execute(t, "--source", src, "--target", target, "--format", "text")
	require.Equal(t, 0, code, stderr)

	testutil.AssertExists(t, fs, filepath.Join(target, "src/main/java/io/example/app/App.java"))
}

func TestRun_FlagsOverrideProjectConfig(t *testing.T) {
	fs, src := setupTemplate(t)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(src, ".retemplate.toml"),
		[]byte("[project.new]\npackage = \"io.example.app\"\n"), 0644))

	code, _, stderr := execute(t, "--source", src, "--new-package", "org.flag", "--format", "text")
	require.Equal(t, 0, code, stderr)

	testutil.AssertExists(t, fs, filepath.Join(src+"-new", "src/main/java/org/flag/App.java"))
}

func TestRun_TargetExists(t *testing.T) {
	fs, src := setupTemplate(t)
	require.NoError(t, fs.MkdirAll(src+"-new", 0755))

	code, stdout, stderr := execute(t, "--source", src, "--format", "text")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "ALREADY_EXISTS")
}

func TestRun_InvalidConfiguration(t *testing.T) {
	_, src := setupTemplate(t)

	code, _, stderr := execute(t, "--source", src, "--descriptor-mode", "yaml", "--format", "text")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "CONFIG_INVALID")
}

func TestRun_ErrorAsJSON(t *testing.T) {
	fs, src := setupTemplate(t)
	require.NoError(t, fs.MkdirAll(src+"-new", 0755))

	code, _, stderr := execute(t, "--source", src, "--format", "json")
	require.Equal(t, 1, code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stderr), &out))
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "ALREADY_EXISTS", out["code"])
}

func TestRun_DryRunJSON(t *testing.T) {
	fs, src := setupTemplate(t)

	code, stdout, stderr := execute(t, "--source", src, "--dry-run", "--format", "json")
	require.Equal(t, 0, code, stderr)

	var report struct {
		OK       bool `json:"ok"`
		DryRun   bool `json:"dry_run"`
		Promoted bool `json:"promoted"`
		Sources  struct {
			Rewritten int `json:"rewritten"`
		} `json:"sources"`
		Failures []interface{} `json:"failures"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.OK)
	assert.True(t, report.DryRun)
	assert.True(t, report.Promoted)
	assert.Equal(t, 1, report.Sources.Rewritten)
	assert.Empty(t, report.Failures)

	testutil.AssertNotExists(t, fs, src+"-new")
	entries, err := afero.ReadDir(fs, filepath.Dir(src))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "dry run must not leave staging directories behind")
}

func TestRun_UnexpectedArgument(t *testing.T) {
	_, src := setupTemplate(t)

	code, _, _ := execute(t, "--source", src, "extra")
	assert.Equal(t, 1, code)
}

func TestGenConfig(t *testing.T) {
	fs, src := setupTemplate(t)

	t.Run("stdout", func(t *testing.T) {
		code, stdout, _ := execute(t, "gen-config")
		require.Equal(t, 0, code)
		assert.Contains(t, stdout, "[project.old]")
		assert.Contains(t, stdout, "source_roots")
	})

	t.Run("write refuses to overwrite", func(t *testing.T) {
		code, stdout, stderr := execute(t, "gen-config", "-w", "--source", src)
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, filepath.Join(src, ".retemplate.toml"))
		testutil.AssertExists(t, fs, filepath.Join(src, ".retemplate.toml"))

		code, _, stderr = execute(t, "gen-config", "-w", "--source", src)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "already exists")
	})
}

func TestConfigCommand(t *testing.T) {
	_, src := setupTemplate(t)
	t.Setenv("RETEMPLATE_RELOCATE_PRUNE_EMPTY", "true")

	code, stdout, stderr := execute(t, "config", "--format", "json", "--source", src, "--new-group", "org.acme", "--exclude", "*.iml", "--exclude", "target")
	require.Equal(t, 0, code, stderr)

	var cfg struct {
		Project struct {
			New struct {
				Group string `json:"group"`
			} `json:"new"`
		} `json:"project"`
		Clone struct {
			Exclude []string `json:"exclude"`
		} `json:"clone"`
		Relocate struct {
			PruneEmpty bool `json:"prune_empty"`
		} `json:"relocate"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "org.acme", cfg.Project.New.Group)
	assert.Equal(t, []string{"*.iml", "target"}, cfg.Clone.Exclude)
	assert.True(t, cfg.Relocate.PruneEmpty)
}

func TestConfigCommand_UnknownFormat(t *testing.T) {
	_, src := setupTemplate(t)

	code, _, stderr := execute(t, "config", "--format", "ini", "--source", src)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown config format")
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := execute(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "retemplate dev")
}

func TestCompletionCommand(t *testing.T) {
	code, stdout, _ := execute(t, "completion", "bash")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "retemplate")

	code, _, _ = execute(t, "completion", "tcsh")
	assert.Equal(t, 1, code)
}

func TestManCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "man1")

	code, stdout, stderr := execute(t, "man", "--dir", dir)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, dir)

	_, err := os.Stat(filepath.Join(dir, "retemplate.1"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "retemplate-gen-config.1"))
	assert.NoError(t, err)
}

func TestHelpTopics(t *testing.T) {
	code, stdout, _ := execute(t, "help", "topics")
	require.Equal(t, 0, code)
	for _, name := range []string{"configuration", "modes", "symlinks", "exit-codes", "--dry-run", "--strict"} {
		assert.Contains(t, stdout, name)
	}

	code, stdout, _ = execute(t, "help", "exit-codes")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "strict")
}

func TestFlagOverrides(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	addRunFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse([]string{
		"--new-group", "org.acme",
		"--no-staging",
		"--strict",
		"--source-root", "src/main/kotlin",
	}))

	assert.Equal(t, map[string]interface{}{
		"project.new.group":     "org.acme",
		"run.staging":           false,
		"run.strict":            true,
		"relocate.source_roots": []string{"src/main/kotlin"},
	}, flagOverrides(cmd.Flags()))
}
