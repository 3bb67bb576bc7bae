package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/spritz/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Generate the sprite, write it and inject it into pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), app.BuildOptions{Config: configOptions(cmd)})
		},
	}
}
