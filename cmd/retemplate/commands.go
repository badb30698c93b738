package retemplate

import (
	"fmt"
	"os"

	"github.com/arthur-debert/retemplate/cmd/retemplate/commands/genconfig"
	"github.com/arthur-debert/retemplate/cmd/retemplate/commands/man"
	"github.com/arthur-debert/retemplate/cmd/retemplate/commands/showconfig"
	"github.com/arthur-debert/retemplate/internal/version"
	"github.com/arthur-debert/retemplate/pkg/cobrax/topics"
	"github.com/arthur-debert/retemplate/pkg/config"
	"github.com/arthur-debert/retemplate/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		format    string
	)

	rootCmd := &cobra.Command{
		Use:     "retemplate",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRetemplate(cmd, format)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	addRunFlags(rootCmd.PersistentFlags())

	// --format belongs to the run itself; `config` has its own
	rootCmd.Flags().StringVar(&format, "format", "", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "config",
		Title: "CONFIGURATION:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(genconfig.NewCommand(sourceDir))
	rootCmd.AddCommand(showconfig.NewCommand(func(cmd *cobra.Command) (*config.Config, error) {
		return loadConfig(cmd, nil)
	}))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(man.NewCommand())

	// Topic-based help from the markdown files embedded in the binary
	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.RendererFor(os.Stdout),
		GroupID:    "misc",
	}
	if _, err := topics.InitializeWithOptions(rootCmd, helpTopics(), opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
