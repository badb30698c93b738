// pkg/clone/clone_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs, OS fs for symlinks
// PURPOSE: Test tree copying, precondition checks, failure collection and symlink policies

package clone_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/retemplate/pkg/clone"
	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/registry"
	"github.com/arthur-debert/retemplate/pkg/testutil"
	_ "github.com/arthur-debert/retemplate/pkg/triggers"
	"github.com/arthur-debert/retemplate/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateTree() testutil.FileTree {
	return testutil.FileTree{
		"pom.xml": "<project><groupId>com.zygh</groupId></project>",
		"src": testutil.FileTree{
			"main": testutil.FileTree{
				"java": testutil.FileTree{
					"com": testutil.FileTree{"zygh": testutil.FileTree{"project": testutil.FileTree{
						"App.java": "package com.zygh.project;",
					}}},
				},
				"resources": testutil.FileTree{},
			},
		},
		"README.md": "# template",
	}
}

func TestClone_Isomorphic(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/work/tpl", templateTree())

	result, err := clone.Clone(context.Background(), fs, "/work/tpl", "/work/tpl-new", clone.Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Failures)

	assert.Equal(t, testutil.ReadTree(t, fs, "/work/tpl"), testutil.ReadTree(t, fs, "/work/tpl-new"))
	assert.Equal(t, 7, result.Stats.Dirs)
	assert.Equal(t, 3, result.Stats.Files)
	testutil.AssertDirExists(t, fs, "/work/tpl-new/src/main/resources")
}

func TestClone_TargetExists(t *testing.T) {
	base := afero.NewMemMapFs()
	testutil.WriteTree(t, base, "/work/tpl", templateTree())
	testutil.WriteTree(t, base, "/work/tpl-new", testutil.FileTree{"keep.txt": "mine"})
	fs := testutil.NewFailingFs(base)

	result, err := clone.Clone(context.Background(), fs, "/work/tpl", "/work/tpl-new", clone.Options{})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	assert.Equal(t, 1, errors.ExitCode(err))
	assert.Equal(t, 0, fs.Writes())
	assert.Equal(t, map[string]string{"keep.txt": "mine"}, testutil.ReadTree(t, base, "/work/tpl-new"))
}

func TestClone_TargetInsideSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/work/tpl", templateTree())

	_, err := clone.Clone(context.Background(), fs, "/work/tpl", "/work/tpl/copy", clone.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestClone_MissingSource(t *testing.T) {
	_, err := clone.Clone(context.Background(), afero.NewMemMapFs(), "/nope", "/nope-new", clone.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestClone_CollectsFailures(t *testing.T) {
	base := afero.NewMemMapFs()
	testutil.WriteTree(t, base, "/work/tpl", templateTree())
	fs := testutil.NewFailingFs(base).
		FailOn(testutil.OpOpen, "tpl/README.md").
		FailOn(testutil.OpMkdir, "tpl-new/src/main/resources")

	result, err := clone.Clone(context.Background(), fs, "/work/tpl", "/work/tpl-new", clone.Options{})
	require.NoError(t, err)

	require.Len(t, result.Failures, 2)
	got := map[string]string{}
	for _, f := range result.Failures {
		assert.Equal(t, types.StageClone, f.Stage)
		assert.ErrorIs(t, f.Err, testutil.ErrInjected)
		got[f.Path] = f.Op
	}
	assert.Equal(t, map[string]string{"README.md": "copy", "src/main/resources": "mkdir"}, got)

	// everything else was still copied
	testutil.AssertFileContent(t, base, "/work/tpl-new/pom.xml", "<project><groupId>com.zygh</groupId></project>")
	testutil.AssertFileContent(t, base, "/work/tpl-new/src/main/java/com/zygh/project/App.java", "package com.zygh.project;")
	testutil.AssertNotExists(t, base, "/work/tpl-new/README.md")
}

func TestClone_Exclude(t *testing.T) {
	fs := afero.NewMemMapFs()
	tree := templateTree()
	tree["target"] = testutil.FileTree{"classes": testutil.FileTree{"App.class": "bin"}}
	tree[".git"] = testutil.FileTree{"HEAD": "ref"}
	testutil.WriteTree(t, fs, "/work/tpl", tree)

	exclude, err := registry.BuildTriggers("pattern", []map[string]interface{}{
		{"pattern": "target"},
		{"pattern": ".git/"},
		{"pattern": "*.md"},
	})
	require.NoError(t, err)

	result, err := clone.Clone(context.Background(), fs, "/work/tpl", "/work/tpl-new", clone.Options{Exclude: exclude})
	require.NoError(t, err)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 3, result.Stats.Skipped)

	testutil.AssertNotExists(t, fs, "/work/tpl-new/target")
	testutil.AssertNotExists(t, fs, "/work/tpl-new/.git")
	testutil.AssertNotExists(t, fs, "/work/tpl-new/README.md")
	testutil.AssertExists(t, fs, "/work/tpl-new/pom.xml")
}

func TestClone_Cancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/work/tpl", templateTree())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := clone.Clone(ctx, fs, "/work/tpl", "/work/tpl-new", clone.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
}

func TestClone_PreservesPermissions(t *testing.T) {
	root := t.TempDir()
	fs := afero.NewOsFs()
	src := filepath.Join(root, "tpl")
	testutil.WriteTree(t, fs, src, testutil.FileTree{"mvnw": "#!/bin/sh"})
	require.NoError(t, os.Chmod(filepath.Join(src, "mvnw"), 0755))

	_, err := clone.Clone(context.Background(), fs, src, src+"-new", clone.Options{})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(src+"-new", "mvnw"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func symlinkTree(t *testing.T) (afero.Fs, string) {
	t.Helper()
	root := t.TempDir()
	fs := afero.NewOsFs()
	testutil.WriteTree(t, fs, filepath.Join(root, "shared"), testutil.FileTree{"lib.txt": "shared lib"})
	testutil.WriteTree(t, fs, filepath.Join(root, "tpl"), testutil.FileTree{
		"real.txt":  "real",
		"alias.txt": testutil.Link("real.txt"),
		"shared":    testutil.Link("../shared"),
		"dangling":  testutil.Link("does-not-exist"),
	})
	return fs, root
}

func TestClone_SymlinksPreserve(t *testing.T) {
	fs, root := symlinkTree(t)
	src := filepath.Join(root, "tpl")

	result, err := clone.Clone(context.Background(), fs, src, src+"-new", clone.Options{Symlinks: clone.Preserve})
	require.NoError(t, err)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 3, result.Stats.Symlinks)

	assert.Equal(t, map[string]string{
		"real.txt":  "real",
		"alias.txt": "-> real.txt",
		"shared":    "-> ../shared",
		"dangling":  "-> does-not-exist",
	}, testutil.ReadTree(t, fs, src+"-new"))
}

func TestClone_SymlinksFollow(t *testing.T) {
	fs, root := symlinkTree(t)
	src := filepath.Join(root, "tpl")

	result, err := clone.Clone(context.Background(), fs, src, src+"-new", clone.Options{Symlinks: clone.Follow})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "dangling", result.Failures[0].Path)
	assert.Equal(t, "follow", result.Failures[0].Op)

	assert.Equal(t, map[string]string{
		"real.txt":       "real",
		"alias.txt":      "real",
		"shared/":        "",
		"shared/lib.txt": "shared lib",
	}, testutil.ReadTree(t, fs, src+"-new"))
}

func TestClone_SymlinksFollowCycle(t *testing.T) {
	root := t.TempDir()
	fs := afero.NewOsFs()
	src := filepath.Join(root, "tpl")
	testutil.WriteTree(t, fs, src, testutil.FileTree{
		"a": testutil.FileTree{
			"file.txt": "x",
			"loop":     testutil.Link(".."),
		},
	})

	result, err := clone.Clone(context.Background(), fs, src, src+"-new", clone.Options{Symlinks: clone.Follow})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "a/loop", result.Failures[0].Path)
	testutil.AssertFileContent(t, fs, filepath.Join(src+"-new", "a", "file.txt"), "x")
	testutil.AssertNotExists(t, fs, filepath.Join(src+"-new", "a", "loop"))
}

func TestClone_SymlinksFollowNestedCycle(t *testing.T) {
	root := t.TempDir()
	fs := afero.NewOsFs()
	src := filepath.Join(root, "tpl")
	testutil.WriteTree(t, fs, src, testutil.FileTree{
		"a": testutil.FileTree{
			"file.txt": "x",
			"b": testutil.FileTree{
				"loop": testutil.Link(".."),
			},
		},
	})

	result, err := clone.Clone(context.Background(), fs, src, src+"-new", clone.Options{Symlinks: clone.Follow})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "a/b/loop", result.Failures[0].Path)
	assert.Equal(t, "follow", result.Failures[0].Op)
	testutil.AssertFileContent(t, fs, filepath.Join(src+"-new", "a", "file.txt"), "x")
	testutil.AssertNotExists(t, fs, filepath.Join(src+"-new", "a", "b", "loop"))
	assert.Equal(t, map[string]string{"a/": "", "a/file.txt": "x", "a/b/": ""}, testutil.ReadTree(t, fs, src+"-new"))
}

func TestClone_SymlinksSkip(t *testing.T) {
	fs, root := symlinkTree(t)
	src := filepath.Join(root, "tpl")

	result, err := clone.Clone(context.Background(), fs, src, src+"-new", clone.Options{Symlinks: clone.Skip})
	require.NoError(t, err)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 3, result.Stats.Skipped)
	assert.Equal(t, map[string]string{"real.txt": "real"}, testutil.ReadTree(t, fs, src+"-new"))
}
