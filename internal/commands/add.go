package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dayplan/internal/model"
)

func addAdd(topLevel *cobra.Command) {
	var (
		spaceRef string
		at       string
		duration time.Duration
		remind   int
		desc     string
		every    string
		interval int
		days     string
		until    string
		count    int
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task, optionally recurring",
		Example: `
dayplan add "Standup" --space Work --at "2026-03-02 09:00" --for 15m --remind 10
dayplan add "Gym" --space Health --at "2026-03-02 18:00" --for 1h --every weekly --days mon,wed,fri
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			space, err := resolveSpace(e.svc, spaceRef)
			if err != nil {
				return err
			}
			start, err := parseTime(at)
			if err != nil {
				return err
			}

			task := model.Task{
				Title:       strings.Join(args, " "),
				Description: desc,
				SpaceID:     space.ID,
				StartTime:   start,
				EndTime:     start.Add(duration),
				Kind:        model.TaskStandalone,
			}
			if cmd.Flags().Changed("remind") {
				task.ReminderMinutesBefore = &remind
			}
			if every != "" {
				freq := model.Frequency(every)
				weekdays, err := parseWeekdays(days)
				if err != nil {
					return err
				}
				rule := &model.RecurrenceRule{
					Frequency:           freq,
					Interval:            interval,
					DaysOfWeek:          weekdays,
					EndAfterOccurrences: count,
				}
				if until != "" {
					end, err := parseDay(until)
					if err != nil {
						return err
					}
					rule.EndDate = &end
				}
				task.Kind = model.TaskTemplate
				task.Recurrence = rule
			}

			saved, err := e.svc.SaveTask(cmd.Context(), task)
			if err != nil {
				return err
			}
			if saved.IsTemplate() {
				fmt.Fprintf(cmd.OutOrStdout(), "added recurring task %s (%s)\n", saved.Title, saved.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", saved.Title, saved.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&spaceRef, "space", "", "task space name or id (required)")
	cmd.Flags().StringVar(&at, "at", "", "start time (required)")
	cmd.Flags().DurationVar(&duration, "for", 30*time.Minute, "duration")
	cmd.Flags().IntVar(&remind, "remind", 0, "minutes before start to remind")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&every, "every", "", "recurrence: daily, weekly, monthly, custom")
	cmd.Flags().IntVar(&interval, "interval", 1, "recurrence interval")
	cmd.Flags().StringVar(&days, "days", "", "weekdays for weekly rules, e.g. mon,wed,fri")
	cmd.Flags().StringVar(&until, "until", "", "last day of the recurrence")
	cmd.Flags().IntVar(&count, "count", 0, "stop after N occurrences")
	cobra.CheckErr(cmd.MarkFlagRequired("space"))
	cobra.CheckErr(cmd.MarkFlagRequired("at"))

	topLevel.AddCommand(cmd)
}
