package cli

import (
	"github.com/spf13/cobra"

	"abacus/internal/buildinfo"
)

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.print(buildinfo.Read())
		},
	}
}
