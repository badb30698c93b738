package core

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/retemplate/pkg/clone"
	"github.com/arthur-debert/retemplate/pkg/config"
	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/filesystem"
	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/paths"
	"github.com/arthur-debert/retemplate/pkg/registry"
	"github.com/arthur-debert/retemplate/pkg/relocate"
	"github.com/arthur-debert/retemplate/pkg/rewrite"
	"github.com/arthur-debert/retemplate/pkg/triggers"
	"github.com/arthur-debert/retemplate/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options contains everything a pipeline run needs
type Options struct {
	// Config is the merged configuration; it is validated again by Run
	Config *config.Config

	// FileSystem defaults to the OS filesystem
	FileSystem afero.Fs

	// Progress receives stage events, may be nil
	Progress types.Progress
}

type pipeline struct {
	ctx      context.Context
	cfg      *config.Config
	rc       types.RenameConfig
	fs       afero.Fs
	progress types.Progress
	logger   zerolog.Logger
	report   *types.Report

	// work is the tree the stages operate on, staging is its hidden parent
	// when the run is staged
	work    string
	staging string
}

// Run clones the source project and rewrites the copy to the new
// coordinates. The report is returned whenever the run got past path
// resolution, also alongside an error.
func Run(ctx context.Context, opts Options) (*types.Report, error) {
	logger := logging.GetLogger("core.pipeline")
	if opts.Config == nil {
		return nil, errors.New(errors.ErrInternal, "no configuration given")
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := paths.Resolve(cfg.Paths.Source, cfg.Paths.Target, cfg.Paths.Suffix)
	if err != nil {
		return nil, err
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if cfg.Run.DryRun {
		fs = filesystem.NewDryRun(fs)
	}

	pl := &pipeline{
		ctx:      ctx,
		cfg:      cfg,
		rc:       cfg.RenameConfig(),
		fs:       fs,
		progress: types.ProgressOrNop(opts.Progress),
		logger:   logger,
		report:   &types.Report{Source: p.Source, Target: p.Target, DryRun: cfg.Run.DryRun},
	}

	logger.Info().
		Str("source", p.Source).
		Str("target", p.Target).
		Bool("dryRun", cfg.Run.DryRun).
		Bool("staging", cfg.Run.Staging).
		Bool("strict", cfg.Run.Strict).
		Msg("Starting retemplate run")

	if err := pl.precondition(p); err != nil {
		return pl.report, err
	}
	if err := pl.prepare(p); err != nil {
		return pl.report, err
	}
	if err := pl.stages(p.Source); err != nil {
		return pl.report, err
	}
	if err := pl.promote(p.Target); err != nil {
		return pl.report, err
	}

	logger.Info().
		Int("failures", len(pl.report.Failures)).
		Bool("promoted", pl.report.Promoted).
		Msg("Run finished")
	return pl.report, nil
}

func (pl *pipeline) precondition(p types.ProjectPaths) error {
	info, err := pl.fs.Stat(p.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "source directory %s", p.Source)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "source %s is not a directory", p.Source)
	}

	exists, err := filesystem.Exists(pl.fs, p.Target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to check target %s", p.Target)
	}
	if exists {
		return errors.Newf(errors.ErrAlreadyExists, "target directory %s already exists", p.Target).
			WithDetail("target", p.Target)
	}
	return nil
}

// prepare picks the working tree: a fresh directory inside a hidden staging
// sibling of the target, or the target itself.
func (pl *pipeline) prepare(p types.ProjectPaths) error {
	if !pl.cfg.Run.Staging {
		pl.work = p.Target
		return nil
	}

	parent := filepath.Dir(p.Target)
	if err := pl.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", parent)
	}
	staging, err := afero.TempDir(pl.fs, parent, paths.StagingPrefix(p.Target))
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create staging directory in %s", parent)
	}
	pl.staging = staging
	pl.work = filepath.Join(staging, filepath.Base(p.Target))
	pl.logger.Debug().Str("staging", staging).Msg("Staging directory created")
	return nil
}

func (pl *pipeline) stages(source string) error {
	exclude, err := registry.BuildTriggers(triggers.PatternTriggerName, patternOptions(pl.cfg.Clone.Exclude))
	if err != nil {
		pl.discard()
		return err
	}

	steps := []struct {
		stage types.Stage
		run   func() ([]types.Failure, error)
	}{
		{types.StageClone, func() ([]types.Failure, error) {
			res, err := clone.Clone(pl.ctx, pl.fs, source, pl.work, clone.Options{
				Symlinks: clone.SymlinkPolicy(pl.cfg.Clone.Symlinks),
				Exclude:  exclude,
				Progress: pl.progress,
			})
			if res == nil {
				return nil, err
			}
			pl.report.Clone = res.Stats
			return res.Failures, err
		}},
		{types.StageDescriptor, func() ([]types.Failure, error) {
			res, err := rewrite.RewriteDescriptors(pl.ctx, pl.fs, pl.work, pl.rc, rewrite.DescriptorOptions{
				Filenames: pl.cfg.Descriptor.Filenames,
				Mode:      rewrite.Mode(pl.cfg.Descriptor.Mode),
				Progress:  pl.progress,
			})
			if res == nil {
				return nil, err
			}
			pl.report.Descriptors = res.Stats
			return res.Failures, err
		}},
		{types.StageText, func() ([]types.Failure, error) {
			res, err := rewrite.RewriteSources(pl.ctx, pl.fs, pl.work, pl.rc, rewrite.SourceOptions{
				Extensions: pl.cfg.Source.Extensions,
				Mode:       rewrite.Mode(pl.cfg.Source.Mode),
				Progress:   pl.progress,
			})
			if res == nil {
				return nil, err
			}
			pl.report.Sources = res.Stats
			return res.Failures, err
		}},
		{types.StageRelocate, func() ([]types.Failure, error) {
			res, err := relocate.Relocate(pl.ctx, pl.fs, pl.work, pl.rc, relocate.Options{
				SourceRoots: pl.cfg.Relocate.SourceRoots,
				PruneEmpty:  pl.cfg.Relocate.PruneEmpty,
				Progress:    pl.progress,
			})
			if res == nil {
				return nil, err
			}
			pl.report.Relocate = res.Stats
			return res.Failures, err
		}},
	}

	for _, step := range steps {
		if err := pl.ctx.Err(); err != nil {
			return pl.cancelled(err)
		}

		done := logging.LogOperationStart(pl.logger, string(step.stage))
		failures, err := step.run()
		done()
		pl.report.AddFailures(failures...)

		if err != nil {
			if errors.IsErrorCode(err, errors.ErrCancelled) {
				return pl.cancelled(err)
			}
			// an unstaged target that appeared meanwhile is not ours to remove
			if pl.staging != "" || !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
				pl.discard()
			}
			return err
		}
		if pl.cfg.Run.Strict && len(failures) > 0 {
			pl.discard()
			return errors.Newf(errors.ErrStageFailed, "%s stage collected %d failure(s), nothing was written to the target",
				step.stage, len(failures)).
				WithDetail("stage", string(step.stage)).
				WithDetail("failures", len(failures))
		}
	}
	return nil
}

// promote moves the staged tree to the target
func (pl *pipeline) promote(target string) error {
	if pl.staging == "" {
		pl.report.Promoted = true
		return nil
	}
	pl.progress.StageStarted(types.StagePromote)

	exists, err := filesystem.Exists(pl.fs, target)
	if err != nil {
		pl.discard()
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to check target %s", target).
			WithDetail("target", target)
	}
	if exists {
		pl.discard()
		return errors.Newf(errors.ErrAlreadyExists, "target directory %s appeared during the run", target).
			WithDetail("target", target)
	}
	if err := pl.fs.Rename(pl.work, target); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move staged project to %s", target).
			WithDetail("staging", pl.staging)
	}
	if err := pl.fs.RemoveAll(pl.staging); err != nil {
		pl.report.AddFailures(types.Failure{
			Stage: types.StagePromote,
			Path:  filepath.Base(pl.staging),
			Op:    "cleanup",
			Err:   err,
		})
	}
	pl.report.Promoted = true
	pl.logger.Debug().Str("target", target).Msg("Staged project promoted")
	return nil
}

// discard removes everything this run wrote. The target was verified absent
// before the run, so an unstaged target can go as well.
func (pl *pipeline) discard() {
	dir := pl.staging
	if dir == "" {
		dir = pl.work
	}
	if dir == "" {
		return
	}
	if err := pl.fs.RemoveAll(dir); err != nil {
		pl.logger.Warn().Err(err).Str("path", dir).Msg("Failed to remove partial output")
	}
}

func (pl *pipeline) cancelled(err error) error {
	left := pl.staging
	if left == "" {
		left = pl.work
	}
	return errors.Wrapf(err, errors.ErrCancelled, "run interrupted, partial output left in %s", left).
		WithDetail("path", left)
}

func patternOptions(patterns []string) []map[string]interface{} {
	sets := make([]map[string]interface{}, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		sets = append(sets, map[string]interface{}{"pattern": p})
	}
	return sets
}
