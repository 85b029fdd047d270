package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/notify"
	"dayplan/internal/timeutil"
	"dayplan/internal/views"
)

func waitForReminderCmd(ch <-chan notify.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Notification: n}
	}
}

func (m Model) Init() tea.Cmd {
	if m.engine != nil {
		return waitForReminderCmd(m.engine.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.CaptureActive {
			return m.handleCaptureKey(typed)
		}
		return m.handleKey(typed)

	case ReminderDueMsg:
		m.ReminderLog = append(m.ReminderLog, typed.Notification)
		if len(m.ReminderLog) > 20 {
			m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-20:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s", typed.Notification.Title)}
		if m.engine != nil {
			return m, waitForReminderCmd(m.engine.C())
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case RefreshMsg:
		m.refresh()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		m.helpModel.ShowAll = m.HelpVisible
	case key.Matches(msg, m.Keys.Day):
		m.CurrentView = ViewDay
		m.refresh()
	case key.Matches(msg, m.Keys.Week):
		m.CurrentView = ViewWeek
		m.refresh()
	case key.Matches(msg, m.Keys.Month):
		m.CurrentView = ViewMonth
		m.refresh()
	case key.Matches(msg, m.Keys.TodayJump):
		m.FocusDate = time.Now()
		m.Cursor = 0
		m.refresh()
	case key.Matches(msg, m.Keys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, m.Keys.Next):
		m.moveFocus(1)
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.DayTasks)-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.Keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.Keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.Keys.QuickAdd):
		m.CaptureActive = true
		m.captureInput.Focus()
		m.Status = StatusBar{Text: "quick add: TITLE @SPACE HH:MM-HH:MM, enter to save, esc to cancel"}
	}
	return m, nil
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.submitCapture()
		return m, nil
	case "esc":
		m.CaptureActive = false
		m.captureInput.Blur()
		m.captureInput.SetValue("")
		m.Status = StatusBar{}
		return m, nil
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.captureInput, cmd = m.captureInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var left string
	switch m.CurrentView {
	case ViewWeek:
		left = views.RenderWeekPanel(m.weekPanelData())
	case ViewMonth:
		left = views.RenderMonthPanel(m.monthPanelData())
	default:
		left = views.RenderDayPanel(m.dayPanelData())
	}

	right := views.RenderTaskDetail(m.detailData())
	if m.CaptureActive {
		right = views.RenderCapture(m.captureInput.View())
	}

	status := m.Status.Text
	if m.Status.IsError {
		status = "error: " + status
	}

	reminders := ""
	if n := len(m.ReminderLog); n > 0 {
		last := m.ReminderLog[n-1]
		reminders = fmt.Sprintf("last reminder: %s (%s)", last.Title, last.TriggerAt.Format("15:04"))
	}

	footer := m.helpModel.View(m.Keys)

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("dayplan | %s | %s", m.CurrentView, m.FocusDate.Format("Mon Jan 2 2006")),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		Notification: reminders,
		Footer:       footer,
	})
}

func (m Model) dayPanelData() views.DayPanelData {
	data := views.DayPanelData{Date: m.FocusDate.Format("Monday, Jan 2")}
	for i, task := range m.DayTasks {
		p := m.Placements[task.ID]
		data.Rows = append(data.Rows, views.DayTaskData{
			Selected:   i == m.Cursor,
			Completed:  task.Completed,
			Start:      task.StartTime.Format("15:04"),
			End:        task.EndTime.Format("15:04"),
			Title:      task.Title,
			SpaceName:  m.Spaces[task.SpaceID].Name,
			SpaceColor: m.Spaces[task.SpaceID].Color,
			Left:       p.Left,
			Width:      p.Width,
			Overflow:   p.Overflow,
			Recurring:  task.IsInstance(),
		})
	}
	return data
}

func (m Model) weekPanelData() views.WeekPanelData {
	data := views.WeekPanelData{}
	for _, day := range m.weekDays() {
		tasks := m.tasksOn(day)
		dayData := views.WeekDayData{
			Label:   day.Format("Mon 02"),
			IsToday: timeutil.SameDay(day, time.Now()),
			IsFocus: timeutil.SameDay(day, m.FocusDate),
		}
		for _, task := range tasks {
			dayData.Entries = append(dayData.Entries, fmt.Sprintf("%s %s", task.StartTime.Format("15:04"), task.Title))
		}
		data.Days = append(data.Days, dayData)
	}
	return data
}

func (m Model) monthPanelData() views.MonthPanelData {
	first := timeutil.StartOfMonth(m.FocusDate)
	last := timeutil.EndOfMonth(m.FocusDate)
	data := views.MonthPanelData{
		Label:     m.FocusDate.Format("January 2006"),
		WeekStart: m.WeekStartDay,
	}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		data.Cells = append(data.Cells, views.MonthCellData{
			Day:     day.Day(),
			Weekday: day.Weekday(),
			Count:   len(m.tasksOn(day)),
			IsToday: timeutil.SameDay(day, time.Now()),
			IsFocus: timeutil.SameDay(day, m.FocusDate),
		})
	}
	return data
}

func (m Model) detailData() views.TaskDetailData {
	task, ok := m.selectedTask()
	if !ok {
		return views.TaskDetailData{}
	}
	data := views.TaskDetailData{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Space:       m.Spaces[task.SpaceID].Name,
		When:        fmt.Sprintf("%s - %s", task.StartTime.Format("15:04"), task.EndTime.Format("15:04")),
		Completed:   task.Completed,
		Recurring:   task.IsInstance(),
	}
	if task.ReminderMinutesBefore != nil {
		data.Reminder = fmt.Sprintf("%d min before", *task.ReminderMinutesBefore)
	}
	for _, item := range task.Checklist {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		data.Checklist = append(data.Checklist, fmt.Sprintf("[%s] %s", mark, item.Text))
	}
	return data
}
