// Package man implements the man command, which renders the command tree
// as man pages.
package man

import (
	"fmt"
	"os"

	"github.com/arthur-debert/retemplate/internal/version"
	"github.com/arthur-debert/retemplate/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewCommand creates the man command
func NewCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgShort,
		Long:    MsgLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
			}

			header := &doc.GenManHeader{
				Title:   "RETEMPLATE",
				Section: "1",
				Source:  "retemplate " + version.Version,
				Manual:  "retemplate manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to generate man pages")
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgWritten, dir)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "man", MsgFlagDir)

	return cmd
}
