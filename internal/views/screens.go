package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type DayTaskData struct {
	Selected   bool
	Completed  bool
	Start      string
	End        string
	Title      string
	SpaceName  string
	SpaceColor string
	Left       float64
	Width      float64
	Overflow   bool
	Recurring  bool
}

type DayPanelData struct {
	Date string
	Rows []DayTaskData
}

type WeekDayData struct {
	Label   string
	IsToday bool
	IsFocus bool
	Entries []string
}

type WeekPanelData struct {
	Days []WeekDayData
}

type MonthCellData struct {
	Day     int
	Weekday time.Weekday
	Count   int
	IsToday bool
	IsFocus bool
}

type MonthPanelData struct {
	Label     string
	WeekStart time.Weekday
	Cells     []MonthCellData
}

type TaskDetailData struct {
	ID          string
	Title       string
	Description string
	Space       string
	When        string
	Reminder    string
	Completed   bool
	Recurring   bool
	Checklist   []string
}

var (
	doneStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	focusStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderDayPanel draws the day timeline. Overlapping tasks keep the column
// placement computed by the layout engine: a half-width task in the right
// column is indented, and a third overlapping task shows as a compact
// overflow marker.
func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	b.WriteString(data.Date + "\n")
	b.WriteString("actions: [j/k]select [space]done [a]add [x]delete [h/l]day\n\n")
	if len(data.Rows) == 0 {
		b.WriteString("(nothing scheduled)")
		return strings.TrimSpace(b.String())
	}
	lastHour := ""
	for _, row := range data.Rows {
		if hour := row.Start[:2]; hour != lastHour {
			b.WriteString(dimStyle.Render(hour+":00 "+strings.Repeat("-", 40)) + "\n")
			lastHour = hour
		}
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		mark := "[ ]"
		if row.Completed {
			mark = "[x]"
		}

		indent := ""
		if row.Overflow {
			indent = strings.Repeat(" ", 24)
		} else if row.Left > 0 {
			indent = strings.Repeat(" ", 12)
		}

		line := fmt.Sprintf("%s %s %s-%s %s%s", cursor, mark, row.Start, row.End, indent, row.Title)
		if row.Recurring {
			line += " ~"
		}
		if row.Overflow {
			line += " +"
		}
		if row.SpaceName != "" {
			tag := fmt.Sprintf(" (%s)", row.SpaceName)
			if row.SpaceColor != "" {
				tag = lipgloss.NewStyle().Foreground(lipgloss.Color(row.SpaceColor)).Render(tag)
			}
			line += tag
		}

		switch {
		case row.Completed:
			line = doneStyle.Render(line)
		case row.Selected:
			line = focusStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderWeekPanel(data WeekPanelData) string {
	var b strings.Builder
	b.WriteString("week:\n")
	b.WriteString("actions: [h/l]week [d]day [m]month\n")
	for _, day := range data.Days {
		label := day.Label
		if day.IsToday {
			label += " *"
		}
		if day.IsFocus {
			label = focusStyle.Render(label)
		}
		b.WriteString("\n" + label + "\n")
		if len(day.Entries) == 0 {
			b.WriteString(dimStyle.Render("  (none)") + "\n")
			continue
		}
		for _, entry := range day.Entries {
			b.WriteString("  " + entry + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderMonthPanel(data MonthPanelData) string {
	var b strings.Builder
	b.WriteString(data.Label + "\n")
	b.WriteString("actions: [h/l]month [d]day [w]week\n\n")

	for i := 0; i < 7; i++ {
		day := time.Weekday((int(data.WeekStart) + i) % 7)
		b.WriteString(fmt.Sprintf("%-5s", day.String()[:3]))
	}
	b.WriteString("\n")

	if len(data.Cells) > 0 {
		lead := (int(data.Cells[0].Weekday) - int(data.WeekStart) + 7) % 7
		b.WriteString(strings.Repeat("     ", lead))
		col := lead
		for _, cell := range data.Cells {
			label := fmt.Sprintf("%2d", cell.Day)
			switch {
			case cell.Count > 0:
				label += fmt.Sprintf(".%d", cell.Count)
			default:
				label += "  "
			}
			if cell.IsFocus {
				label = focusStyle.Render(label)
			} else if cell.Count == 0 {
				label = dimStyle.Render(label)
			}
			if cell.IsToday {
				label += "*"
			} else {
				label += " "
			}
			b.WriteString(label)
			col++
			if col%7 == 0 {
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetail(data TaskDetailData) string {
	if data.ID == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("space: %s\n", data.Space))
	b.WriteString(fmt.Sprintf("when: %s\n", data.When))
	if data.Reminder != "" {
		b.WriteString(fmt.Sprintf("reminder: %s\n", data.Reminder))
	}
	if data.Recurring {
		b.WriteString("recurring: yes\n")
	}
	if data.Completed {
		b.WriteString("completed: yes\n")
	}
	if data.Description != "" {
		b.WriteString("\n" + RenderMarkdown(data.Description) + "\n")
	}
	if len(data.Checklist) > 0 {
		b.WriteString("\nchecklist:\n")
		for _, item := range data.Checklist {
			b.WriteString("  " + item + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("\nid: %s", data.ID))
	return strings.TrimSpace(b.String())
}

func RenderCapture(inputView string) string {
	var b strings.Builder
	b.WriteString("quick add:\n")
	b.WriteString("format: TITLE @SPACE HH:MM-HH:MM\n\n")
	b.WriteString(inputView)
	return strings.TrimSpace(b.String())
}
