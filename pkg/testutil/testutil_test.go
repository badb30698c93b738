package testutil

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	WriteTree(t, fs, "/p", FileTree{
		"pom.xml": "<project/>",
		"src": FileTree{
			"main": FileTree{"App.java": "class App {}"},
		},
		"empty": FileTree{},
	})

	tree := ReadTree(t, fs, "/p")
	assert.Equal(t, map[string]string{
		"empty/":            "",
		"pom.xml":           "<project/>",
		"src/":              "",
		"src/main/":         "",
		"src/main/App.java": "class App {}",
	}, tree)

	assert.Equal(t, map[string]string{
		"pom.xml":           "<project/>",
		"src/main/App.java": "class App {}",
	}, Files(tree))
}

func TestFailingFs(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/p/a.txt", []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(base, "/p/b.txt", []byte("b"), 0644))

	fs := NewFailingFs(base).FailOn(OpOpen, "a.txt").FailOn(OpOpenFile, "/p/b.txt")

	_, err := fs.Open("/p/a.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInjected))

	data, err := afero.ReadFile(fs, "/p/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	err = afero.WriteFile(fs, "/p/b.txt", []byte("x"), 0644)
	assert.True(t, errors.Is(err, ErrInjected))
	assert.Equal(t, 0, fs.Writes())

	require.NoError(t, fs.Mkdir("/p/dir", 0755))
	assert.Equal(t, 1, fs.Writes())

	_, ok, err := fs.LstatIfPossible("/p/a.txt")
	require.NoError(t, err)
	assert.False(t, ok, "MemMapFs has no lstat")

	err = fs.SymlinkIfPossible("a.txt", "/p/link")
	var linkErr *os.LinkError
	assert.ErrorAs(t, err, &linkErr)
}

func TestAssertions(t *testing.T) {
	fs := afero.NewMemMapFs()
	WriteTree(t, fs, "/p", FileTree{"f": "content", "d": FileTree{}})

	AssertFileContent(t, fs, "/p/f", "content")
	AssertExists(t, fs, "/p/f")
	AssertDirExists(t, fs, "/p/d")
	AssertNotExists(t, fs, "/p/missing")
}
