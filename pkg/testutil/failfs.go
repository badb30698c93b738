package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// ErrInjected is the error FailingFs returns unless another one is given
var ErrInjected = errors.New("injected failure")

// Operations understood by FailingFs
const (
	OpOpen     = "open"     // Open, used for reads and directory listings
	OpOpenFile = "openfile" // OpenFile, used for writes
	OpMkdir    = "mkdir"    // Mkdir and MkdirAll
	OpRename   = "rename"   // Rename, matched on the old name
	OpRemove   = "remove"   // Remove and RemoveAll
	OpStat     = "stat"     // Stat and Lstat
	OpChmod    = "chmod"
)

type injection struct {
	op     string
	suffix string
	err    error
}

// FailingFs wraps an afero.Fs and fails chosen operations on paths ending
// with a given suffix. Everything else is passed through.
type FailingFs struct {
	afero.Fs

	mu         sync.Mutex
	injections []injection
	writes     int
}

// NewFailingFs wraps base
func NewFailingFs(base afero.Fs) *FailingFs {
	return &FailingFs{Fs: base}
}

// FailOn makes op fail for every path ending with suffix
func (f *FailingFs) FailOn(op, suffix string) *FailingFs {
	return f.FailOnWith(op, suffix, ErrInjected)
}

// FailOnWith is FailOn with a custom error
func (f *FailingFs) FailOnWith(op, suffix string, err error) *FailingFs {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.injections = append(f.injections, injection{op: op, suffix: filepath.ToSlash(suffix), err: err})
	return f
}

// Writes counts the mutating calls that reached the wrapped filesystem
func (f *FailingFs) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *FailingFs) check(op, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slashed := filepath.ToSlash(filepath.Clean(name))
	for _, inj := range f.injections {
		if inj.op == op && strings.HasSuffix(slashed, inj.suffix) {
			return &os.PathError{Op: op, Path: name, Err: inj.err}
		}
	}
	return nil
}

func (f *FailingFs) wrote() {
	f.mu.Lock()
	f.writes++
	f.mu.Unlock()
}

func (f *FailingFs) Open(name string) (afero.File, error) {
	if err := f.check(OpOpen, name); err != nil {
		return nil, err
	}
	return f.Fs.Open(name)
}

func (f *FailingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := f.check(OpOpenFile, name); err != nil {
		return nil, err
	}
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		f.wrote()
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *FailingFs) Create(name string) (afero.File, error) {
	if err := f.check(OpOpenFile, name); err != nil {
		return nil, err
	}
	f.wrote()
	return f.Fs.Create(name)
}

func (f *FailingFs) Mkdir(name string, perm os.FileMode) error {
	if err := f.check(OpMkdir, name); err != nil {
		return err
	}
	f.wrote()
	return f.Fs.Mkdir(name, perm)
}

func (f *FailingFs) MkdirAll(path string, perm os.FileMode) error {
	if err := f.check(OpMkdir, path); err != nil {
		return err
	}
	f.wrote()
	return f.Fs.MkdirAll(path, perm)
}

func (f *FailingFs) Rename(oldname, newname string) error {
	if err := f.check(OpRename, oldname); err != nil {
		return err
	}
	f.wrote()
	return f.Fs.Rename(oldname, newname)
}

func (f *FailingFs) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	f.wrote()
	return f.Fs.Remove(name)
}

func (f *FailingFs) RemoveAll(path string) error {
	if err := f.check(OpRemove, path); err != nil {
		return err
	}
	f.wrote()
	return f.Fs.RemoveAll(path)
}

func (f *FailingFs) Stat(name string) (os.FileInfo, error) {
	if err := f.check(OpStat, name); err != nil {
		return nil, err
	}
	return f.Fs.Stat(name)
}

func (f *FailingFs) Chmod(name string, mode os.FileMode) error {
	if err := f.check(OpChmod, name); err != nil {
		return err
	}
	f.wrote()
	return f.Fs.Chmod(name, mode)
}

func (f *FailingFs) Chtimes(name string, atime, mtime time.Time) error {
	f.wrote()
	return f.Fs.Chtimes(name, atime, mtime)
}

// LstatIfPossible keeps lstat semantics of the wrapped filesystem visible
// to afero.Walk.
func (f *FailingFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	if err := f.check(OpStat, name); err != nil {
		return nil, false, err
	}
	if l, ok := f.Fs.(afero.Lstater); ok {
		return l.LstatIfPossible(name)
	}
	info, err := f.Fs.Stat(name)
	return info, false, err
}

func (f *FailingFs) SymlinkIfPossible(oldname, newname string) error {
	if l, ok := f.Fs.(afero.Linker); ok {
		f.wrote()
		return l.SymlinkIfPossible(oldname, newname)
	}
	return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: afero.ErrNoSymlink}
}

func (f *FailingFs) ReadlinkIfPossible(name string) (string, error) {
	if r, ok := f.Fs.(afero.LinkReader); ok {
		return r.ReadlinkIfPossible(name)
	}
	return "", &os.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

func (f *FailingFs) Name() string {
	return "FailingFs(" + f.Fs.Name() + ")"
}
