package update

import (
	"context"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dayplan/internal/app"
	"dayplan/internal/model"
	"dayplan/internal/notify"
	"dayplan/internal/storage"
	"dayplan/internal/timeutil"
)

var anchor = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *app.Service, model.TaskSpace) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	store := storage.NewStore(storage.NewMemKV(), logger)
	svc := app.NewService(store, nil, timeutil.NewFakeClock(anchor), logger, 30)

	space, err := svc.CreateSpace(model.TaskSpace{Name: "Work", Color: "#2563EB"})
	if err != nil {
		t.Fatalf("CreateSpace: %v", err)
	}

	m := New(svc, nil, true)
	m.FocusDate = anchor
	m.refresh()
	return m, svc, space
}

func addTask(t *testing.T, svc *app.Service, spaceID, title string, start time.Time) model.Task {
	t.Helper()
	saved, err := svc.SaveTask(context.Background(), model.Task{
		Title:     title,
		SpaceID:   spaceID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Kind:      model.TaskStandalone,
	})
	if err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	return saved
}

func TestViewSwitching(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(keyMsg("w"))
	m = next.(Model)
	if m.CurrentView != ViewWeek {
		t.Fatalf("view = %s, want Week", m.CurrentView)
	}
	next, _ = m.Update(keyMsg("m"))
	m = next.(Model)
	if m.CurrentView != ViewMonth {
		t.Fatalf("view = %s, want Month", m.CurrentView)
	}
	next, _ = m.Update(keyMsg("d"))
	m = next.(Model)
	if m.CurrentView != ViewDay {
		t.Fatalf("view = %s, want Day", m.CurrentView)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m, svc, space := newTestModel(t)
	addTask(t, svc, space.ID, "One", anchor.Add(time.Hour))
	addTask(t, svc, space.ID, "Two", anchor.Add(3*time.Hour))
	m.refresh()

	next, _ := m.Update(keyMsg("k"))
	m = next.(Model)
	if m.Cursor != 0 {
		t.Fatalf("cursor moved above 0: %d", m.Cursor)
	}
	for range 5 {
		next, _ = m.Update(keyMsg("j"))
		m = next.(Model)
	}
	if m.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.Cursor)
	}
}

func TestToggleCompletesSelectedTask(t *testing.T) {
	m, svc, space := newTestModel(t)
	saved := addTask(t, svc, space.ID, "One", anchor.Add(time.Hour))
	m.refresh()

	next, _ := m.Update(keyMsg(" "))
	m = next.(Model)

	got, err := svc.Task(saved.ID)
	if err != nil {
		t.Fatalf("Task: %v", err)
	}
	if !got.Completed {
		t.Fatal("task should be completed after toggle")
	}
	if !m.DayTasks[0].Completed {
		t.Fatal("day list should reflect the toggle")
	}
}

func TestDeleteInstanceRemovesSeries(t *testing.T) {
	m, svc, space := newTestModel(t)
	tmpl := model.Task{
		Title:      "Gym",
		SpaceID:    space.ID,
		StartTime:  anchor.Add(time.Hour),
		EndTime:    anchor.Add(2 * time.Hour),
		Kind:       model.TaskTemplate,
		Recurrence: &model.RecurrenceRule{Frequency: model.FrequencyDaily, Interval: 1},
	}
	if _, err := svc.SaveTask(context.Background(), tmpl); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	m.refresh()
	if len(m.DayTasks) == 0 {
		t.Fatal("expected a generated instance on the focused day")
	}

	next, _ := m.Update(keyMsg("x"))
	m = next.(Model)

	if got := len(svc.Tasks()); got != 0 {
		t.Fatalf("expected the whole series gone, %d tasks remain", got)
	}
}

func TestQuickAddParsesSpaceAndTimeRange(t *testing.T) {
	m, _, _ := newTestModel(t)

	task, err := m.parseQuickAdd("Standup notes @work 09:00-09:15")
	if err != nil {
		t.Fatalf("parseQuickAdd: %v", err)
	}
	if task.Title != "Standup notes" {
		t.Errorf("title = %q", task.Title)
	}
	if task.StartTime.Hour() != 9 || task.StartTime.Minute() != 0 {
		t.Errorf("start = %v", task.StartTime)
	}
	if task.EndTime.Sub(task.StartTime) != 15*time.Minute {
		t.Errorf("duration = %v", task.EndTime.Sub(task.StartTime))
	}
	if !timeutil.SameDay(task.StartTime, m.FocusDate) {
		t.Errorf("task not on the focused day: %v", task.StartTime)
	}
}

func TestQuickAddRejectsUnknownSpace(t *testing.T) {
	m, _, _ := newTestModel(t)

	if _, err := m.parseQuickAdd("Lunch @nowhere 12:00-13:00"); err == nil {
		t.Fatal("expected an error for an unknown space")
	}
}

func TestReminderLogCapped(t *testing.T) {
	m, _, _ := newTestModel(t)

	for i := range 25 {
		next, _ := m.Update(ReminderDueMsg{Notification: notify.Notification{
			ID:        string(rune('a' + i)),
			Title:     "ping",
			TriggerAt: anchor,
		}})
		m = next.(Model)
	}
	if len(m.ReminderLog) != 20 {
		t.Fatalf("log length = %d, want 20", len(m.ReminderLog))
	}
	if m.Status.Text == "" {
		t.Fatal("status should show the last reminder")
	}
}

func TestCaptureEscCancels(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)
	if !m.CaptureActive {
		t.Fatal("capture should be active after a")
	}
	next, _ = m.Update(keyMsg("esc"))
	m = next.(Model)
	if m.CaptureActive {
		t.Fatal("esc should cancel capture")
	}
}

func TestQuitSetsQuitting(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if !m.Quitting {
		t.Fatal("q should set Quitting")
	}
	if cmd == nil {
		t.Fatal("q should return tea.Quit")
	}
}
