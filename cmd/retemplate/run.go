package retemplate

import (
	"context"
	"io"

	"github.com/arthur-debert/retemplate/pkg/core"
	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/arthur-debert/retemplate/pkg/ui"
	"github.com/spf13/cobra"
)

// runRetemplate loads the configuration, runs the pipeline and prints the
// report. format is the raw --format value, empty when not given.
func runRetemplate(cmd *cobra.Command, format string) error {
	logger := logging.GetLogger("cmd.run")

	var extra map[string]interface{}
	if cmd.Flags().Changed("format") {
		extra = map[string]interface{}{"run.format": format}
	}

	cfg, err := loadConfig(cmd, extra)
	if err != nil {
		return err
	}

	outFormat, err := ui.ParseFormat(cfg.Run.Format)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	outFormat = ui.Resolve(outFormat, out)

	progress := ui.NewConsoleProgress(out, cmd.ErrOrStderr(), outFormat)
	report, runErr := core.Run(cmd.Context(), core.Options{
		Config:   cfg,
		Progress: progress,
	})

	// A strict abort still shows what failed
	if report != nil && (runErr == nil || errors.IsErrorCode(runErr, errors.ErrStageFailed)) {
		if err := ui.RenderReport(out, report, outFormat); err != nil {
			logger.Error().Err(err).Msg("Failed to render report")
		}
	}

	return runErr
}

// Execute runs the command line and returns the process exit status.
// Errors are rendered on stderr in the format selected by --format.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	format := ui.FormatAuto
	if value, ferr := rootCmd.Flags().GetString("format"); ferr == nil {
		if parsed, perr := ui.ParseFormat(value); perr == nil {
			format = parsed
		}
	}
	_ = ui.RenderError(stderr, err, format)
	return errors.ExitCode(err)
}
