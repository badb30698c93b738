package relocate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/filesystem"
	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options configures Relocate
type Options struct {
	// SourceRoots are relative to the tree root, e.g. src/main/java
	SourceRoots []string

	// PruneEmpty removes the old package's parents once they are empty
	PruneEmpty bool

	Progress types.Progress
}

// Result is the outcome of the relocation
type Result struct {
	Stats    types.RelocateStats
	Failures []types.Failure
}

type relocator struct {
	fs       afero.Fs
	root     string
	opts     Options
	logger   zerolog.Logger
	progress types.Progress
	result   *Result
}

// Relocate moves <sourceRoot>/<old package path> to <sourceRoot>/<new package
// path> for every source root below root. A missing old path is a warning, a
// failed move is recorded as a failure. Only cancellation returns an error.
func Relocate(ctx context.Context, fsys afero.Fs, root string, rc types.RenameConfig, opts Options) (*Result, error) {
	r := &relocator{
		fs:       fsys,
		root:     root,
		opts:     opts,
		logger:   logging.GetLogger("relocate"),
		progress: types.ProgressOrNop(opts.Progress),
		result:   &Result{},
	}
	r.progress.StageStarted(types.StageRelocate)
	done := logging.LogOperationStart(r.logger, "relocate")
	defer done()

	for _, sr := range opts.SourceRoots {
		if sr == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return r.result, errors.Wrap(err, errors.ErrCancelled, "relocation cancelled")
		}
		r.sourceRoot(filepath.FromSlash(sr), rc)
	}
	return r.result, nil
}

func (r *relocator) sourceRoot(sr string, rc types.RenameConfig) {
	oldRel := filepath.Join(sr, types.PackageDir(rc.OldPackage))
	newRel := filepath.Join(sr, types.PackageDir(rc.NewPackage))
	oldPath := filepath.Join(r.root, oldRel)
	newPath := filepath.Join(r.root, newRel)

	info, err := filesystem.Lstat(r.fs, oldPath)
	if err == nil && info.Mode()&os.ModeSymlink != 0 {
		// a linked package directory is moved as a link
		info, err = r.fs.Stat(oldPath)
	}
	switch {
	case os.IsNotExist(err) || (err == nil && !info.IsDir()):
		r.result.Stats.Missing = append(r.result.Stats.Missing, filepath.ToSlash(oldRel))
		msg := fmt.Sprintf("package directory %s not found, nothing to relocate", filepath.ToSlash(oldRel))
		r.progress.Warning(types.StageRelocate, msg)
		r.logger.Warn().Str("path", oldRel).Msg("Package directory not found")
		return
	case err != nil:
		r.fail(oldRel, "stat", err)
		return
	}

	if oldPath == newPath {
		r.logger.Debug().Str("path", oldRel).Msg("Old and new package paths are the same")
		return
	}

	if err := r.move(filepath.Join(r.root, sr), oldPath, newPath); err != nil {
		r.fail(oldRel, "move", err)
		return
	}

	move := types.Move{From: filepath.ToSlash(oldRel), To: filepath.ToSlash(newRel)}
	r.result.Stats.Moved = append(r.result.Stats.Moved, move)
	r.progress.FileChanged(types.StageRelocate, move.To, 0)
	r.logger.Info().Str("from", move.From).Str("to", move.To).Msg("Package relocated")

	if r.opts.PruneEmpty {
		r.prune(filepath.Join(r.root, sr), filepath.Dir(oldPath))
	}
}

// move relocates oldPath to newPath. When the destination exists or one path
// contains the other, the tree is parked in a temporary directory under
// srcRoot first and then merged into place.
func (r *relocator) move(srcRoot, oldPath, newPath string) error {
	exists, err := filesystem.Exists(r.fs, newPath)
	if err != nil {
		return err
	}
	nested := filesystem.Within(oldPath, newPath) || filesystem.Within(newPath, oldPath)
	if !exists && !nested {
		if err := r.fs.MkdirAll(filepath.Dir(newPath), 0755); err != nil {
			return err
		}
		return r.fs.Rename(oldPath, newPath)
	}

	tmp, err := afero.TempDir(r.fs, srcRoot, ".relocate-")
	if err != nil {
		return err
	}
	parked := filepath.Join(tmp, filepath.Base(oldPath))
	if err := r.fs.Rename(oldPath, parked); err != nil {
		_ = r.fs.RemoveAll(tmp)
		return err
	}
	if err := r.merge(parked, newPath); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "merge incomplete, remaining entries kept in %s", tmp)
	}
	return r.fs.RemoveAll(tmp)
}

// merge moves src to dst. Directories are merged entry by entry, any other
// existing destination is replaced.
func (r *relocator) merge(src, dst string) error {
	dstInfo, err := filesystem.Lstat(r.fs, dst)
	if os.IsNotExist(err) {
		if err := r.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return r.fs.Rename(src, dst)
	}
	if err != nil {
		return err
	}
	srcInfo, err := filesystem.Lstat(r.fs, src)
	if err != nil {
		return err
	}

	if !srcInfo.IsDir() || !dstInfo.IsDir() {
		r.logger.Debug().Str("path", dst).Msg("Replacing existing entry")
		if err := r.fs.RemoveAll(dst); err != nil {
			return err
		}
		return r.fs.Rename(src, dst)
	}

	names, err := readDirNames(r.fs, src)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := r.merge(filepath.Join(src, name), filepath.Join(dst, name)); err != nil {
			return err
		}
	}
	return r.fs.Remove(src)
}

// prune removes empty directories from dir upwards, stopping below srcRoot
func (r *relocator) prune(srcRoot, dir string) {
	for dir != srcRoot && filesystem.Within(srcRoot, dir) {
		empty, err := filesystem.IsEmptyDir(r.fs, dir)
		if err != nil || !empty {
			return
		}
		if err := r.fs.Remove(dir); err != nil {
			r.fail(filesystem.RelPath(r.root, dir), "prune", err)
			return
		}
		r.result.Stats.Pruned = append(r.result.Stats.Pruned, filepath.ToSlash(filesystem.RelPath(r.root, dir)))
		dir = filepath.Dir(dir)
	}
}

func (r *relocator) fail(rel, op string, err error) {
	f := types.Failure{Stage: types.StageRelocate, Path: filepath.ToSlash(rel), Op: op, Err: err}
	r.result.Failures = append(r.result.Failures, f)
	r.progress.Warning(types.StageRelocate, f.Error())
	r.logger.Warn().Str("path", f.Path).Str("op", op).Err(err).Msg("Relocation failed")
}

func readDirNames(fsys afero.Fs, dir string) ([]string, error) {
	f, err := fsys.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return f.Readdirnames(-1)
}
