package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Exists reports whether anything, including a dangling symlink, is at path
func Exists(fsys afero.Fs, path string) (bool, error) {
	_, err := Lstat(fsys, path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// CopyFile streams src into a newly created dst with the given permissions
func CopyFile(fsys afero.Fs, src, dst string, perm os.FileMode) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// Within reports whether child is parent itself or lives below it.
// Both paths must be absolute or both relative.
func Within(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// RelPath returns path relative to root, or path unchanged when it is not below root
func RelPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || !Within(root, path) {
		return path
	}
	return rel
}

// IsEmptyDir reports whether path is a directory without entries
func IsEmptyDir(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}
	return afero.IsEmpty(fsys, path)
}
