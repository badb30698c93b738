package clone

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/filesystem"
	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// SymlinkPolicy decides what happens to symbolic links in the source
type SymlinkPolicy string

const (
	// Preserve recreates the link with the same link text
	Preserve SymlinkPolicy = "preserve"
	// Follow copies whatever the link points to
	Follow SymlinkPolicy = "follow"
	// Skip ignores links
	Skip SymlinkPolicy = "skip"
)

// maxLinkHops bounds link chains resolved in follow mode
const maxLinkHops = 40

// Options configures a clone
type Options struct {
	Symlinks SymlinkPolicy

	// Exclude triggers are matched against paths relative to the source.
	// A matching directory is skipped with its subtree.
	Exclude []types.Trigger

	Progress types.Progress
}

// Result is the outcome of a clone
type Result struct {
	Stats    types.CloneStats
	Failures []types.Failure
}

type cloner struct {
	ctx    context.Context
	fs     afero.Fs
	source string
	opts   Options
	result *Result
	logger zerolog.Logger
}

// Clone copies source into target, which must not exist yet.
// The returned error is only set for problems that prevent the clone from
// starting or cancel it; per-entry problems end up in Result.Failures.
func Clone(ctx context.Context, fsys afero.Fs, source, target string, opts Options) (*Result, error) {
	logger := logging.GetLogger("clone")
	source = filepath.Clean(source)
	target = filepath.Clean(target)
	if opts.Symlinks == "" {
		opts.Symlinks = Preserve
	}
	opts.Progress = types.ProgressOrNop(opts.Progress)

	info, err := fsys.Stat(source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "source directory %s", source)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "source %s is not a directory", source)
	}
	if filesystem.Within(source, target) {
		return nil, errors.Newf(errors.ErrInvalidInput, "target %s is inside source %s", target, source).
			WithDetail("target", target)
	}
	exists, err := filesystem.Exists(fsys, target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to check target %s", target)
	}
	if exists {
		return nil, errors.Newf(errors.ErrAlreadyExists, "target directory %s already exists", target).
			WithDetail("target", target)
	}

	opts.Progress.StageStarted(types.StageClone)
	if err := fsys.MkdirAll(target, info.Mode().Perm()|0700); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create target %s", target)
	}

	c := &cloner{ctx: ctx, fs: fsys, source: source, opts: opts, result: &Result{}, logger: logger}
	done := logging.LogOperationStart(logger, "clone")
	err = c.tree(source, target, "", []string{source})
	done()
	if err != nil {
		return c.result, err
	}

	logger.Info().
		Int("dirs", c.result.Stats.Dirs).
		Int("files", c.result.Stats.Files).
		Int("symlinks", c.result.Stats.Symlinks).
		Int("failures", len(c.result.Failures)).
		Msg("Clone finished")
	return c.result, nil
}

// tree copies the directory src into the existing directory dst. prefix is
// the path of src relative to the clone source and active holds the real
// directories currently being walked, used to detect link cycles.
func (c *cloner) tree(src, dst, prefix string, active []string) error {
	return afero.Walk(c.fs, src, func(path string, info os.FileInfo, walkErr error) error {
		if err := c.ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrCancelled, "clone cancelled")
		}

		rel := filepath.Join(prefix, filesystem.RelPath(src, path))
		if path == src {
			rel = prefix
		}
		if walkErr != nil {
			c.fail(rel, "walk", walkErr)
			if info != nil && info.IsDir() && path != src {
				return filepath.SkipDir
			}
			return nil
		}
		if path == src {
			return nil
		}

		if types.AnyMatch(c.opts.Exclude, filepath.ToSlash(rel), info) {
			c.result.Stats.Skipped++
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		out := filepath.Join(dst, filesystem.RelPath(src, path))
		switch mode := info.Mode(); {
		case mode.IsDir():
			if err := c.fs.Mkdir(out, mode.Perm()|0700); err != nil {
				c.fail(rel, "mkdir", err)
				return filepath.SkipDir
			}
			c.result.Stats.Dirs++
		case mode.IsRegular():
			c.file(path, out, rel, mode.Perm())
		case mode&os.ModeSymlink != 0:
			return c.link(path, out, rel, active)
		default:
			c.result.Stats.Skipped++
			c.logger.Debug().Str("path", rel).Str("mode", mode.String()).
				Msg("Skipping special file")
		}
		return nil
	})
}

func (c *cloner) file(src, dst, rel string, perm os.FileMode) {
	if err := filesystem.CopyFile(c.fs, src, dst, perm); err != nil {
		c.fail(rel, "copy", err)
		return
	}
	// the umask may have narrowed the mode on create
	if err := c.fs.Chmod(dst, perm); err != nil {
		c.fail(rel, "chmod", err)
		return
	}
	c.result.Stats.Files++
}

func (c *cloner) link(src, dst, rel string, active []string) error {
	switch c.opts.Symlinks {
	case Skip:
		c.result.Stats.Skipped++
		return nil

	case Follow:
		resolved, err := c.resolve(src)
		if err != nil {
			c.fail(rel, "follow", err)
			return nil
		}
		info, err := c.fs.Stat(resolved)
		if err != nil {
			c.fail(rel, "follow", err)
			return nil
		}
		if !info.IsDir() {
			c.file(resolved, dst, rel, info.Mode().Perm())
			return nil
		}
		// the directory holding the link is a real path being walked, so
		// a target at or above it loops back into the current walk
		for _, dir := range append([]string{filepath.Dir(src)}, active...) {
			if filesystem.Within(resolved, dir) {
				c.fail(rel, "follow", errors.Newf(errors.ErrSymlinkCreate, "link cycle through %s", resolved))
				return nil
			}
		}
		if err := c.fs.Mkdir(dst, info.Mode().Perm()|0700); err != nil {
			c.fail(rel, "mkdir", err)
			return nil
		}
		c.result.Stats.Dirs++
		return c.tree(resolved, dst, rel, append(active, resolved))

	default:
		text, err := filesystem.Readlink(c.fs, src)
		if err != nil {
			c.fail(rel, "readlink", err)
			return nil
		}
		if err := filesystem.Symlink(c.fs, text, dst); err != nil {
			c.fail(rel, "symlink", err)
			return nil
		}
		c.result.Stats.Symlinks++
		return nil
	}
}

// resolve follows a chain of links starting at path and returns the final
// cleaned location.
func (c *cloner) resolve(path string) (string, error) {
	current := path
	for i := 0; i < maxLinkHops; i++ {
		info, err := filesystem.Lstat(c.fs, current)
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return current, nil
		}
		text, err := filesystem.Readlink(c.fs, current)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(text) {
			text = filepath.Join(filepath.Dir(current), text)
		}
		current = filepath.Clean(text)
	}
	return "", errors.Newf(errors.ErrSymlinkCreate, "too many links resolving %s", path)
}

func (c *cloner) fail(rel, op string, err error) {
	if rel == "" {
		rel = "."
	}
	f := types.Failure{Stage: types.StageClone, Path: filepath.ToSlash(rel), Op: op, Err: err}
	c.result.Failures = append(c.result.Failures, f)
	c.opts.Progress.Warning(types.StageClone, f.Error())
	c.logger.Warn().Str("path", f.Path).Str("op", op).Err(err).Msg("Clone entry failed")
}
