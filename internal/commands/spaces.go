package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dayplan/internal/model"
)

func addSpaces(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "spaces",
		Short: "List and manage task spaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			spaces := e.svc.Spaces()
			if len(spaces) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no task spaces yet; try: dayplan spaces add Work --color '#2563EB'")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			defer w.Flush()
			for _, space := range spaces {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", space.Name, space.Color, space.Description, space.ID)
			}
			return nil
		},
	}

	addSpacesAdd(cmd)
	addSpacesRm(cmd)
	topLevel.AddCommand(cmd)
}

func addSpacesAdd(parent *cobra.Command) {
	var (
		color string
		desc  string
	)
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a task space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			space, err := e.svc.CreateSpace(model.TaskSpace{
				Name:        args[0],
				Color:       color,
				Description: desc,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created space %s (%s)\n", space.Name, space.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "#2563EB", "hex color, #RRGGBB")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	parent.AddCommand(cmd)
}

func addSpacesRm(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a task space and every task in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			space, err := resolveSpace(e.svc, args[0])
			if err != nil {
				return err
			}
			if err := e.svc.DeleteSpace(space.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted space %s and its tasks\n", space.Name)
			return nil
		},
	}
	parent.AddCommand(cmd)
}
