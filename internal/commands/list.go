package commands

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"dayplan/internal/layout"
	"dayplan/internal/model"
	"dayplan/internal/timeutil"
)

func addList(topLevel *cobra.Command) {
	var (
		day      string
		week     bool
		month    bool
		spaceRef string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a day, week, or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			anchor, err := parseDay(day)
			if err != nil {
				return err
			}

			spaceID := ""
			if spaceRef != "" {
				space, err := resolveSpace(e.svc, spaceRef)
				if err != nil {
					return err
				}
				spaceID = space.ID
			}

			weekStart := time.Sunday
			if e.cfg.WeekStartsMonday {
				weekStart = time.Monday
			}

			var from, to time.Time
			switch {
			case week:
				from = timeutil.StartOfWeek(anchor, weekStart)
				to = timeutil.EndOfWeek(anchor, weekStart)
			case month:
				from = timeutil.StartOfMonth(anchor)
				to = timeutil.EndOfMonth(anchor)
			default:
				from = timeutil.StartOfDay(anchor)
				to = timeutil.EndOfDay(anchor)
			}

			var visible []model.Task
			for _, task := range e.svc.Tasks() {
				if task.IsTemplate() || task.StartTime.Before(from) || task.StartTime.After(to) {
					continue
				}
				if spaceID != "" && task.SpaceID != spaceID {
					continue
				}
				visible = append(visible, task)
			}
			sort.Slice(visible, func(i, j int) bool {
				return visible[i].StartTime.Before(visible[j].StartTime)
			})
			var placements map[string]layout.Placement
			if !week && !month {
				placements = layout.Layout(visible)
			}
			printTasks(cmd, e, visible, placements)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "anchor day (2006-01-02, default today)")
	cmd.Flags().BoolVar(&week, "week", false, "list the whole week")
	cmd.Flags().BoolVar(&month, "month", false, "list the whole month")
	cmd.Flags().StringVar(&spaceRef, "space", "", "filter to one task space")

	topLevel.AddCommand(cmd)
}

func printTasks(cmd *cobra.Command, e *env, tasks []model.Task, placements map[string]layout.Placement) {
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing scheduled")
		return
	}
	names := make(map[string]string)
	for _, space := range e.svc.Spaces() {
		names[space.ID] = space.Name
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	defer w.Flush()
	for _, task := range tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		note := ""
		if p, ok := placements[task.ID]; ok && p.Overflow {
			note = "+"
		}
		fmt.Fprintf(w, "[%s]\t%s-%s\t%s%s\t%s\t%s\n",
			mark,
			task.StartTime.Local().Format("Mon Jan 2 15:04"),
			task.EndTime.Local().Format("15:04"),
			task.Title, note,
			names[task.SpaceID],
			task.ID)
	}
}
