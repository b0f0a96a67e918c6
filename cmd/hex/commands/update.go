package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update [packages...]",
		Short: "Re-resolve dependencies to their newest satisfying versions",
		Long: `Re-resolve the named packages without the lock file bias, keeping other
packages at their locked versions where the constraints allow it. With no
arguments every package floats to its newest satisfying version.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Update(cmd.Context(), args)
		},
	}
}
