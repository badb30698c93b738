package rewrite

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/filesystem"
	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/registry"
	"github.com/arthur-debert/retemplate/pkg/types"
	"github.com/spf13/afero"
)

// Mode selects how matches are found and replaced
type Mode string

const (
	// Literal replaces every occurrence of the old value
	Literal Mode = "literal"
	// XML edits descriptor elements through a parsed tree
	XML Mode = "xml"
	// Token replaces only whole-identifier occurrences in sources
	Token Mode = "token"
)

// Result is the outcome of a rewrite stage
type Result struct {
	Stats    types.RewriteStats
	Failures []types.Failure
}

// rewriteFunc transforms one file's content. It returns the new content and
// the number of replacements; zero replacements means leave the file alone.
type rewriteFunc func(data []byte) ([]byte, int, error)

type walker struct {
	ctx      context.Context
	fs       afero.Fs
	root     string
	stage    types.Stage
	triggers []types.Trigger
	progress types.Progress
	result   *Result
}

// buildTriggers creates one trigger per value through the named factory
func buildTriggers(name, option string, values []string) ([]types.Trigger, error) {
	sets := make([]map[string]interface{}, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		sets = append(sets, map[string]interface{}{option: v})
	}
	return registry.BuildTriggers(name, sets)
}

// run visits every regular file below root selected by the triggers and
// applies fn to it.
func (w *walker) run(fn rewriteFunc) error {
	logger := logging.GetLogger("rewrite").With().Str("stage", string(w.stage)).Logger()

	return afero.Walk(w.fs, w.root, func(path string, info os.FileInfo, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return errors.Wrapf(err, errors.ErrCancelled, "%s rewrite cancelled", w.stage)
		}
		rel := filepath.ToSlash(filesystem.RelPath(w.root, path))
		if walkErr != nil {
			w.fail(rel, "walk", walkErr)
			if info != nil && info.IsDir() && path != w.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() || !types.AnyMatch(w.triggers, path, info) {
			return nil
		}

		w.result.Stats.Matched++
		data, err := afero.ReadFile(w.fs, path)
		if err != nil {
			w.fail(rel, "read", err)
			return nil
		}
		out, count, err := fn(data)
		if err != nil {
			w.fail(rel, "parse", err)
			return nil
		}
		if count == 0 {
			logger.Trace().Str("path", rel).Msg("No match, file left untouched")
			return nil
		}
		if err := afero.WriteFile(w.fs, path, out, info.Mode().Perm()); err != nil {
			w.fail(rel, "write", err)
			return nil
		}

		w.result.Stats.Rewritten++
		w.result.Stats.Replacements += count
		w.progress.FileChanged(w.stage, rel, count)
		logger.Debug().Str("path", rel).Int("replacements", count).Msg("File rewritten")
		return nil
	})
}

func (w *walker) fail(rel, op string, err error) {
	f := types.Failure{Stage: w.stage, Path: rel, Op: op, Err: err}
	w.result.Failures = append(w.result.Failures, f)
	w.progress.Warning(w.stage, f.Error())
	logger := logging.GetLogger("rewrite")
	logger.Warn().
		Str("stage", string(w.stage)).
		Str("path", rel).
		Str("op", op).
		Err(err).
		Msg("Rewrite failed")
}
