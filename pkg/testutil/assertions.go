package testutil

import (
	"testing"

	"github.com/spf13/afero"
)

// AssertFileContent checks that path is a file holding exactly want
func AssertFileContent(t *testing.T, fsys afero.Fs, path, want string) {
	t.Helper()

	got, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Errorf("Failed to read %s: %v", path, err)
		return
	}
	if string(got) != want {
		t.Errorf("Content of %s differs\nExpected: %q\nActual:   %q", path, want, string(got))
	}
}

// AssertExists checks that something exists at path
func AssertExists(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	if ok, err := afero.Exists(fsys, path); err != nil || !ok {
		t.Errorf("Expected %s to exist (err: %v)", path, err)
	}
}

// AssertNotExists checks that nothing exists at path
func AssertNotExists(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	if ok, _ := afero.Exists(fsys, path); ok {
		t.Errorf("Expected %s not to exist", path)
	}
}

// AssertDirExists checks that path is a directory
func AssertDirExists(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	if ok, err := afero.DirExists(fsys, path); err != nil || !ok {
		t.Errorf("Directory does not exist: %s", path)
	}
}
