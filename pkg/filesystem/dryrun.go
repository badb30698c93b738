package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// maxLinkHops bounds link chains resolved by DryRunFs.Stat
const maxLinkHops = 40

// DryRunFs layers an in-memory overlay over a read-only view of a base
// filesystem. Reads fall through to the base, every write lands in the
// overlay. The overlay cannot hold symlinks, so a link created during a dry
// run is stored as an empty placeholder file and its text is kept here.
type DryRunFs struct {
	*afero.CopyOnWriteFs

	mu    sync.RWMutex
	links map[string]string
}

// NewDryRun creates a DryRunFs over base
func NewDryRun(base afero.Fs) *DryRunFs {
	return &DryRunFs{
		CopyOnWriteFs: afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs()).(*afero.CopyOnWriteFs),
		links:         make(map[string]string),
	}
}

func (d *DryRunFs) Name() string { return "DryRunFs" }

func (d *DryRunFs) link(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	text, ok := d.links[filepath.Clean(name)]
	return text, ok
}

// SymlinkIfPossible records newname as a link to oldname
func (d *DryRunFs) SymlinkIfPossible(oldname, newname string) error {
	newname = filepath.Clean(newname)
	if _, _, err := d.LstatIfPossible(newname); err == nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: os.ErrExist}
	}
	f, err := d.CopyOnWriteFs.Create(newname)
	if err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: err}
	}
	if err := f.Close(); err != nil {
		return err
	}

	d.mu.Lock()
	d.links[newname] = oldname
	d.mu.Unlock()
	return nil
}

func (d *DryRunFs) ReadlinkIfPossible(name string) (string, error) {
	if text, ok := d.link(name); ok {
		return text, nil
	}
	return d.CopyOnWriteFs.ReadlinkIfPossible(name)
}

func (d *DryRunFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	if _, ok := d.link(name); ok {
		info, err := d.CopyOnWriteFs.Stat(name)
		if err != nil {
			return nil, true, err
		}
		return linkInfo{info}, true, nil
	}
	return d.CopyOnWriteFs.LstatIfPossible(name)
}

// Stat follows recorded links to their target
func (d *DryRunFs) Stat(name string) (os.FileInfo, error) {
	current := filepath.Clean(name)
	for i := 0; i < maxLinkHops; i++ {
		text, ok := d.link(current)
		if !ok {
			return d.CopyOnWriteFs.Stat(current)
		}
		if !filepath.IsAbs(text) {
			text = filepath.Join(filepath.Dir(current), text)
		}
		current = filepath.Clean(text)
	}
	return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrInvalid}
}

func (d *DryRunFs) Remove(name string) error {
	if err := d.CopyOnWriteFs.Remove(name); err != nil {
		return err
	}
	d.mu.Lock()
	delete(d.links, filepath.Clean(name))
	d.mu.Unlock()
	return nil
}

func (d *DryRunFs) RemoveAll(path string) error {
	if err := d.CopyOnWriteFs.RemoveAll(path); err != nil {
		return err
	}
	d.mu.Lock()
	for name := range d.links {
		if Within(path, name) {
			delete(d.links, name)
		}
	}
	d.mu.Unlock()
	return nil
}

// Rename moves recorded links along with the renamed entry
func (d *DryRunFs) Rename(oldname, newname string) error {
	if err := d.CopyOnWriteFs.Rename(oldname, newname); err != nil {
		return err
	}
	oldname, newname = filepath.Clean(oldname), filepath.Clean(newname)

	d.mu.Lock()
	defer d.mu.Unlock()
	moved := make(map[string]string)
	for name, text := range d.links {
		if Within(oldname, name) {
			moved[newname+strings.TrimPrefix(name, oldname)] = text
			delete(d.links, name)
		}
	}
	for name, text := range moved {
		d.links[name] = text
	}
	return nil
}

type linkInfo struct {
	os.FileInfo
}

func (linkInfo) Mode() os.FileMode { return os.ModeSymlink | 0777 }
func (linkInfo) IsDir() bool       { return false }
