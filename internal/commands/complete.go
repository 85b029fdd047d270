package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addComplete(topLevel *cobra.Command) {
	var reopen bool

	cmd := &cobra.Command{
		Use:   "complete TASK_ID",
		Short: "Mark a task done (or not, with --reopen)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			if reopen {
				task, err := e.svc.ReopenTask(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reopened %s\n", task.Title)
				return nil
			}
			task, err := e.svc.CompleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed %s\n", task.Title)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reopen, "reopen", false, "clear the completed flag instead")

	topLevel.AddCommand(cmd)
}
