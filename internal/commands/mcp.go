package commands

import (
	"github.com/spf13/cobra"

	"dayplan/internal/mcpserver"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the planner over the Model Context Protocol on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			if err := e.svc.Startup(cmd.Context()); err != nil {
				return err
			}
			return mcpserver.ServeStdio(e.svc, e.suggests)
		},
	}
	topLevel.AddCommand(cmd)
}
