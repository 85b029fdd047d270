// Package update holds the bubbletea model for the interactive planner:
// day, week, and month calendars over the stored tasks, quick task capture,
// and a live feed of due reminders from the notification engine.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"

	"dayplan/internal/app"
	"dayplan/internal/layout"
	"dayplan/internal/model"
	"dayplan/internal/notify"
)

type View string

const (
	ViewDay   View = "Day"
	ViewWeek  View = "Week"
	ViewMonth View = "Month"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Day       key.Binding
	Week      key.Binding
	Month     key.Binding
	Prev      key.Binding
	Next      key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	QuickAdd  key.Binding
	Help      key.Binding
	Quit      key.Binding
	TodayJump key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Day:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day view")),
		Week:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week view")),
		Month:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month view")),
		Prev:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "previous")),
		Next:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete task")),
		QuickAdd:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		TodayJump: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	}
}

// ShortHelp and FullHelp satisfy help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Day, k.Week, k.Month, k.QuickAdd, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Day, k.Week, k.Month, k.TodayJump},
		{k.Prev, k.Next, k.Up, k.Down},
		{k.QuickAdd, k.Toggle, k.Delete, k.Quit},
	}
}

type Model struct {
	CurrentView View
	FocusDate   time.Time
	Cursor      int

	DayTasks   []model.Task
	Placements map[string]layout.Placement
	Spaces     map[string]model.TaskSpace

	Status       StatusBar
	HelpVisible  bool
	ReminderLog  []notify.Notification
	Keys         KeyMap
	Quitting     bool
	WeekStartDay time.Weekday

	CaptureActive bool
	captureInput  textinput.Model
	helpModel     help.Model

	svc    *app.Service
	engine *notify.Engine
}

type ReminderDueMsg struct {
	Notification notify.Notification
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type RefreshMsg struct{}

func New(svc *app.Service, engine *notify.Engine, weekStartsMonday bool) Model {
	input := textinput.New()
	input.Placeholder = `Standup @Work 09:00-09:15`
	input.CharLimit = 120

	weekStart := time.Sunday
	if weekStartsMonday {
		weekStart = time.Monday
	}

	m := Model{
		CurrentView:  ViewDay,
		FocusDate:    time.Now(),
		Keys:         defaultKeyMap(),
		WeekStartDay: weekStart,
		captureInput: input,
		helpModel:    help.New(),
		svc:          svc,
		engine:       engine,
	}
	m.refresh()
	return m
}
