package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// FileTree represents a nested file structure for declarative test setup.
// String values are file contents, FileTree values are directories.
type FileTree map[string]interface{}

// Link is a FileTree value that creates a symlink with the given link text
type Link string

// WriteTree creates tree below base, creating base itself when missing
func WriteTree(t *testing.T, fsys afero.Fs, base string, tree FileTree) {
	t.Helper()

	if err := fsys.MkdirAll(base, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", base, err)
	}
	for name, content := range tree {
		fullPath := filepath.Join(base, name)
		if err := fsys.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create parent directories for %s: %v", fullPath, err)
		}

		switch v := content.(type) {
		case string:
			if err := afero.WriteFile(fsys, fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			WriteTree(t, fsys, fullPath, v)
		case Link:
			linker, ok := fsys.(afero.Linker)
			if !ok {
				t.Fatalf("Filesystem %s cannot create symlink %s", fsys.Name(), fullPath)
			}
			if err := linker.SymlinkIfPossible(string(v), fullPath); err != nil {
				t.Fatalf("Failed to create symlink %s: %v", fullPath, err)
			}
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// ReadTree walks root and returns every entry keyed by its slash separated
// relative path. Files map to their content, directories get a trailing "/"
// and an empty value, symlinks map to "-> " plus their link text.
func ReadTree(t *testing.T, fsys afero.Fs, root string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		switch {
		case info.IsDir():
			out[rel+"/"] = ""
		case info.Mode()&os.ModeSymlink != 0:
			reader, ok := fsys.(afero.LinkReader)
			if !ok {
				out[rel] = "-> ?"
				return nil
			}
			text, err := reader.ReadlinkIfPossible(path)
			if err != nil {
				return err
			}
			out[rel] = "-> " + text
		default:
			data, err := afero.ReadFile(fsys, path)
			if err != nil {
				return err
			}
			out[rel] = string(data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to read tree %s: %v", root, err)
	}
	return out
}

// Files filters a ReadTree snapshot down to regular files
func Files(tree map[string]string) map[string]string {
	out := make(map[string]string)
	for path, content := range tree {
		if strings.HasSuffix(path, "/") || strings.HasPrefix(content, "-> ") {
			continue
		}
		out[path] = content
	}
	return out
}
