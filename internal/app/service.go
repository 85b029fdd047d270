// Package app wires the store, the recurrence expander, and the reminder
// scheduler into the operations the CLI, TUI, and MCP surfaces share.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"dayplan/internal/layout"
	"dayplan/internal/model"
	"dayplan/internal/recur"
	"dayplan/internal/reminder"
	"dayplan/internal/storage"
	"dayplan/internal/timeutil"
)

var (
	ErrTaskNotFound  = errors.New("app: task not found")
	ErrSpaceNotFound = errors.New("app: space not found")
	ErrSpaceInUse    = errors.New("app: space name already in use")
)

type Service struct {
	store       *storage.Store
	reminders   *reminder.Scheduler
	clock       timeutil.Clock
	logger      *slog.Logger
	horizonDays int
}

func NewService(store *storage.Store, reminders *reminder.Scheduler, clock timeutil.Clock, logger *slog.Logger, horizonDays int) *Service {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if horizonDays <= 0 {
		horizonDays = recur.DefaultHorizonDays
	}
	return &Service{store: store, reminders: reminders, clock: clock, logger: logger, horizonDays: horizonDays}
}

// Startup brings the session to a consistent state: every template's
// instance window is regenerated from today, and the notification
// collaborator is rebuilt from the surviving tasks. Call once before
// serving any surface.
func (s *Service) Startup(ctx context.Context) error {
	for _, task := range s.store.Tasks() {
		if !task.IsTemplate() {
			continue
		}
		if err := s.regenerateInstances(task); err != nil {
			return err
		}
	}
	if s.reminders == nil {
		return nil
	}
	profile, _ := s.store.Profile()
	return s.reminders.RescheduleAll(ctx, s.store.Tasks(), s.store.Spaces(), profile)
}

// SaveTask creates or updates a task. Saving a template regenerates its
// whole instance window; there is no per-instance patching. The reminder for
// the saved task (or its instances) is re-derived.
func (s *Service) SaveTask(ctx context.Context, task model.Task) (model.Task, error) {
	task.Normalize()
	if task.ID == "" {
		task.ID = uuid.NewString()
		task.CreatedAt = s.clock.Now()
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if _, ok := s.store.Space(task.SpaceID); !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrSpaceNotFound, task.SpaceID)
	}

	if _, exists := s.store.Task(task.ID); exists {
		if err := s.store.UpdateTask(task); err != nil {
			return model.Task{}, err
		}
	} else if err := s.store.AddTask(task); err != nil {
		return model.Task{}, err
	}

	if task.IsTemplate() {
		if err := s.regenerateInstances(task); err != nil {
			return model.Task{}, err
		}
		s.syncInstanceReminders(ctx, task.ID)
		return task, nil
	}
	s.syncReminder(ctx, task)
	return task, nil
}

// regenerateInstances swaps the template's entire generated window for a
// fresh expansion anchored at today. The swap is wholesale: prior instances
// and their state are discarded, not patched.
func (s *Service) regenerateInstances(template model.Task) error {
	if s.reminders != nil {
		for _, inst := range s.store.InstancesOf(template.ID) {
			s.reminders.CancelFor(inst.ID)
		}
	}
	instances := recur.Expand(template, s.horizonDays, s.clock.Now())
	return s.store.ReplaceInstances(template.ID, instances)
}

func (s *Service) syncInstanceReminders(ctx context.Context, templateID string) {
	if s.reminders == nil {
		return
	}
	profile, _ := s.store.Profile()
	for _, inst := range s.store.InstancesOf(templateID) {
		space, _ := s.store.Space(inst.SpaceID)
		s.reminders.Sync(ctx, inst, space, profile)
	}
}

func (s *Service) syncReminder(ctx context.Context, task model.Task) {
	if s.reminders == nil {
		return
	}
	profile, _ := s.store.Profile()
	space, _ := s.store.Space(task.SpaceID)
	s.reminders.Sync(ctx, task, space, profile)
}

// CompleteTask marks a task done and drops its pending reminder.
func (s *Service) CompleteTask(ctx context.Context, id string) (model.Task, error) {
	return s.setCompleted(ctx, id, true)
}

// ReopenTask clears the completed flag and re-derives the reminder.
func (s *Service) ReopenTask(ctx context.Context, id string) (model.Task, error) {
	return s.setCompleted(ctx, id, false)
}

func (s *Service) setCompleted(ctx context.Context, id string, completed bool) (model.Task, error) {
	task, ok := s.store.Task(id)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	task.Completed = completed
	if err := s.store.UpdateTask(task); err != nil {
		return model.Task{}, err
	}
	s.syncReminder(ctx, task)
	return task, nil
}

// ToggleChecklistItem flips one checklist entry on a task.
func (s *Service) ToggleChecklistItem(taskID, itemID string) (model.Task, error) {
	task, ok := s.store.Task(taskID)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	found := false
	for i := range task.Checklist {
		if task.Checklist[i].ID == itemID {
			task.Checklist[i].Completed = !task.Checklist[i].Completed
			found = true
			break
		}
	}
	if !found {
		return model.Task{}, fmt.Errorf("app: checklist item %s not on task %s", itemID, taskID)
	}
	if err := s.store.UpdateTask(task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task. Deleting a template also removes every
// generated instance; all affected reminders are cancelled first.
func (s *Service) DeleteTask(id string) error {
	task, ok := s.store.Task(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if task.IsTemplate() {
		if s.reminders != nil {
			for _, inst := range s.store.InstancesOf(id) {
				s.reminders.CancelFor(inst.ID)
			}
		}
		if err := s.store.ReplaceInstances(id, nil); err != nil {
			return err
		}
	}
	if s.reminders != nil {
		s.reminders.CancelFor(id)
	}
	return s.store.DeleteTask(id)
}

func (s *Service) Task(id string) (model.Task, error) {
	task, ok := s.store.Task(id)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return task, nil
}

func (s *Service) Tasks() []model.Task { return s.store.Tasks() }

// DayTasks returns the tasks visible on a calendar day, templates excluded,
// ordered by start time.
func (s *Service) DayTasks(day time.Time) []model.Task {
	return layout.TasksForDay(s.store.Tasks(), day)
}

// DayLayout computes the left/width placement for each task on the day.
func (s *Service) DayLayout(day time.Time) ([]model.Task, map[string]layout.Placement) {
	tasks := s.DayTasks(day)
	return tasks, layout.Layout(tasks)
}

// CreateSpace adds a task space, rejecting duplicate names
// case-insensitively.
func (s *Service) CreateSpace(space model.TaskSpace) (model.TaskSpace, error) {
	if space.ID == "" {
		space.ID = uuid.NewString()
		space.CreatedAt = s.clock.Now()
	}
	if err := space.Validate(); err != nil {
		return model.TaskSpace{}, err
	}
	for _, existing := range s.store.Spaces() {
		if existing.ID != space.ID && strings.EqualFold(existing.Name, space.Name) {
			return model.TaskSpace{}, fmt.Errorf("%w: %s", ErrSpaceInUse, space.Name)
		}
	}
	if err := s.store.SaveSpace(space); err != nil {
		return model.TaskSpace{}, err
	}
	return space, nil
}

// DeleteSpace removes a space and cascades to every task in it, cancelling
// their reminders.
func (s *Service) DeleteSpace(id string) error {
	if _, ok := s.store.Space(id); !ok {
		return fmt.Errorf("%w: %s", ErrSpaceNotFound, id)
	}
	removed, err := s.store.DeleteTasksInSpace(id)
	if err != nil {
		return err
	}
	if s.reminders != nil {
		for _, task := range removed {
			s.reminders.CancelFor(task.ID)
		}
	}
	return s.store.DeleteSpace(id)
}

func (s *Service) Spaces() []model.TaskSpace { return s.store.Spaces() }

func (s *Service) Space(id string) (model.TaskSpace, error) {
	space, ok := s.store.Space(id)
	if !ok {
		return model.TaskSpace{}, fmt.Errorf("%w: %s", ErrSpaceNotFound, id)
	}
	return space, nil
}

func (s *Service) Settings() model.AppSettings { return s.store.Settings() }

func (s *Service) SaveSettings(settings model.AppSettings) error {
	return s.store.SaveSettings(settings)
}

func (s *Service) Profile() (model.UserProfile, bool) { return s.store.Profile() }

func (s *Service) SaveProfile(profile model.UserProfile) error {
	return s.store.SaveProfile(profile)
}

// Reset wipes every stored key. Reminders for wiped tasks are cancelled.
func (s *Service) Reset() error {
	if s.reminders != nil {
		for _, task := range s.store.Tasks() {
			s.reminders.CancelFor(task.ID)
		}
	}
	return s.store.ClearAll()
}
