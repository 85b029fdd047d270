package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dayplan/internal/layout"
	"dayplan/internal/model"
	"dayplan/internal/timeutil"
)

// refresh re-reads the focused day from the service and recomputes the
// overlap layout.
func (m *Model) refresh() {
	if m.svc == nil {
		return
	}
	m.DayTasks, m.Placements = m.svc.DayLayout(m.FocusDate)
	m.Spaces = make(map[string]model.TaskSpace)
	for _, space := range m.svc.Spaces() {
		m.Spaces[space.ID] = space
	}
	if m.Cursor >= len(m.DayTasks) {
		m.Cursor = max(0, len(m.DayTasks)-1)
	}
}

func (m *Model) moveFocus(days int) {
	switch m.CurrentView {
	case ViewWeek:
		days *= 7
	case ViewMonth:
		m.FocusDate = m.FocusDate.AddDate(0, days, 0)
		m.Cursor = 0
		m.refresh()
		return
	}
	m.FocusDate = m.FocusDate.AddDate(0, 0, days)
	m.Cursor = 0
	m.refresh()
}

func (m *Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.DayTasks) {
		return model.Task{}, false
	}
	return m.DayTasks[m.Cursor], true
}

func (m *Model) toggleSelected() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	var err error
	if task.Completed {
		_, err = m.svc.ReopenTask(context.Background(), task.ID)
	} else {
		_, err = m.svc.CompleteTask(context.Background(), task.ID)
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("toggled %s", task.Title)}
	m.refresh()
}

func (m *Model) deleteSelected() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	target := task.ID
	label := task.Title
	if task.IsInstance() {
		// Deleting one instance from the calendar removes the whole series.
		target = task.TemplateID
		label = task.Title + " (series)"
	}
	if err := m.svc.DeleteTask(target); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted %s", label)}
	m.refresh()
}

// submitCapture parses the quick-add line: TITLE @SPACE HH:MM-HH:MM on the
// focused day. The space part matches by name, case-insensitive.
func (m *Model) submitCapture() {
	line := strings.TrimSpace(m.captureInput.Value())
	m.CaptureActive = false
	m.captureInput.Blur()
	m.captureInput.SetValue("")
	if line == "" {
		return
	}

	task, err := m.parseQuickAdd(line)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	saved, err := m.svc.SaveTask(context.Background(), task)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("added %s", saved.Title)}
	m.refresh()
}

func (m *Model) parseQuickAdd(line string) (model.Task, error) {
	var (
		titleParts []string
		spaceName  string
		timeRange  string
	)
	for _, token := range strings.Fields(line) {
		switch {
		case strings.HasPrefix(token, "@"):
			spaceName = strings.TrimPrefix(token, "@")
		case looksLikeTimeRange(token):
			timeRange = token
		default:
			titleParts = append(titleParts, token)
		}
	}
	if len(titleParts) == 0 {
		return model.Task{}, fmt.Errorf("quick add needs a title")
	}
	if timeRange == "" {
		return model.Task{}, fmt.Errorf("quick add needs a time range like 09:00-09:30")
	}

	var spaceID string
	for id, space := range m.Spaces {
		if strings.EqualFold(space.Name, spaceName) {
			spaceID = id
			break
		}
	}
	if spaceID == "" {
		return model.Task{}, fmt.Errorf("unknown space %q", spaceName)
	}

	parts := strings.SplitN(timeRange, "-", 2)
	start, err := atTimeOfDay(m.FocusDate, parts[0])
	if err != nil {
		return model.Task{}, err
	}
	end, err := atTimeOfDay(m.FocusDate, parts[1])
	if err != nil {
		return model.Task{}, err
	}

	return model.Task{
		Title:     strings.Join(titleParts, " "),
		SpaceID:   spaceID,
		StartTime: start,
		EndTime:   end,
		Kind:      model.TaskStandalone,
	}, nil
}

func looksLikeTimeRange(token string) bool {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return false
	}
	_, errA := time.Parse("15:04", parts[0])
	_, errB := time.Parse("15:04", parts[1])
	return errA == nil && errB == nil
}

func atTimeOfDay(day time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q", hhmm)
	}
	base := timeutil.StartOfDay(day)
	return base.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute), nil
}

// weekDays lists the seven days of the focused week.
func (m *Model) weekDays() []time.Time {
	start := timeutil.StartOfWeek(m.FocusDate, m.WeekStartDay)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// tasksOn reports the non-template tasks starting on the given day.
func (m *Model) tasksOn(day time.Time) []model.Task {
	if m.svc == nil {
		return nil
	}
	return layout.TasksForDay(m.svc.Tasks(), day)
}
