package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dayplan/internal/model"
	"dayplan/internal/update"
)

func addTUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive day planner",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			svc, engine := e.withEngine()
			if err := svc.Startup(cmd.Context()); err != nil {
				return err
			}
			engine.Start()
			defer engine.Stop()

			m := update.New(svc, engine, e.cfg.WeekStartsMonday)
			switch svc.Settings().DefaultView {
			case model.ViewWeek:
				m.CurrentView = update.ViewWeek
			case model.ViewMonth:
				m.CurrentView = update.ViewMonth
			}
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
