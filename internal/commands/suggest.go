package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dayplan/internal/model"
	"dayplan/internal/suggest"
	"dayplan/internal/views"
)

func addSuggest(topLevel *cobra.Command) {
	var plain bool

	cmd := &cobra.Command{
		Use:   "suggest TASK_ID",
		Short: "Print an AI suggestion for a task",
		Long: `Print a short contextual suggestion for the task. Uses the configured
Gemini API key when present, otherwise falls back to built-in hints.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			task, err := e.svc.Task(args[0])
			if err != nil {
				return err
			}
			space, err := e.svc.Space(task.SpaceID)
			if err != nil {
				space = model.TaskSpace{}
			}
			profile, _ := e.svc.Profile()

			text := e.suggests.Suggest(cmd.Context(), suggest.RequestForTask(task, space, profile))
			md := fmt.Sprintf("**%s**\n\n%s", task.Title, text)
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(md))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print without markdown styling")

	topLevel.AddCommand(cmd)
}
