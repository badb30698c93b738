// Package showconfig implements the config command.
package showconfig

import (
	"github.com/arthur-debert/retemplate/pkg/config"
	"github.com/spf13/cobra"
)

// Loader returns the merged configuration for the command being run
type Loader func(cmd *cobra.Command) (*config.Config, error)

// NewCommand creates the config command
func NewCommand(load Loader) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			out, err := config.Render(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", MsgFlagFormat)

	return cmd
}
