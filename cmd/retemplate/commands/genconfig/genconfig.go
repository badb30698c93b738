package genconfig

import (
	"fmt"

	"github.com/arthur-debert/retemplate/pkg/config"
	"github.com/spf13/cobra"
)

// NewCommand creates the gen-config command. dir resolves the directory
// the file is written to.
func NewCommand(dir func(*cobra.Command) (string, error)) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		GroupID: "config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigContent())
				return err
			}

			target, err := dir(cmd)
			if err != nil {
				return err
			}
			path, err := config.WriteProjectConfig(target)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgWritten, path)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}
