// Package reminder keeps the notification collaborator in step with task
// state. The collaborator is the only record of what is scheduled; every
// mutation path goes cancel-first so a task can never own two live
// reminders.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/notify"
	"dayplan/internal/suggest"
	"dayplan/internal/timeutil"
)

// DefaultOffsetMinutes applies during startup resync to qualifying tasks
// that carry no explicit reminder offset.
const DefaultOffsetMinutes = 15

type Scheduler struct {
	notifier notify.Scheduler
	suggests *suggest.Service
	clock    timeutil.Clock
	logger   *slog.Logger
}

func NewScheduler(notifier notify.Scheduler, suggests *suggest.Service, clock timeutil.Clock, logger *slog.Logger) *Scheduler {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{notifier: notifier, suggests: suggests, clock: clock, logger: logger}
}

// TriggerTime derives the instant a task's reminder should fire. The second
// return reports whether the task has a reminder offset at all.
func TriggerTime(task model.Task) (time.Time, bool) {
	if task.ReminderMinutesBefore == nil {
		return time.Time{}, false
	}
	return task.StartTime.Add(-time.Duration(*task.ReminderMinutesBefore) * time.Minute), true
}

// Sync reconciles one task: any prior reminder is cancelled, then a new one
// is scheduled iff the task is incomplete, has an offset, and the trigger
// time is strictly in the future. Returns whether a reminder is now pending.
// Scheduling failures are logged and swallowed; the task save must not fail
// because its reminder could not be set.
func (s *Scheduler) Sync(ctx context.Context, task model.Task, space model.TaskSpace, profile model.UserProfile) bool {
	s.CancelFor(task.ID)

	offset := task.ReminderMinutesBefore
	if offset == nil {
		return false
	}
	return s.schedule(ctx, task, space, profile, *offset)
}

func (s *Scheduler) schedule(ctx context.Context, task model.Task, space model.TaskSpace, profile model.UserProfile, offsetMinutes int) bool {
	if task.Completed || task.IsTemplate() {
		return false
	}
	now := s.clock.Now()
	if !task.StartTime.After(now) {
		return false
	}
	trigger := task.StartTime.Add(-time.Duration(offsetMinutes) * time.Minute)
	if !trigger.After(now) {
		// No retroactive reminders.
		return false
	}

	req := suggest.RequestForTask(task, space, profile)
	body := suggest.Fallback(req)
	if s.suggests != nil {
		body = s.suggests.Suggest(ctx, req)
	}
	body = fmt.Sprintf("%s\n%s", body, timeInfo(offsetMinutes))

	_, err := s.notifier.Schedule(notify.Request{
		Title:     task.Title,
		Body:      body,
		Data:      notify.Payload{TaskID: task.ID, Type: notify.TypeTaskReminder},
		TriggerAt: trigger,
	})
	if err != nil {
		s.logger.Warn("reminder not scheduled", "task", task.ID, "error", err)
		return false
	}
	return true
}

func timeInfo(offsetMinutes int) string {
	if offsetMinutes == 0 {
		return "Starting now"
	}
	return fmt.Sprintf("Starts in %d min", offsetMinutes)
}

// CancelFor removes every pending reminder tagged with the task id, found by
// filtering the collaborator's pending list on the payload. Cancelling
// nothing is a no-op.
func (s *Scheduler) CancelFor(taskID string) {
	for _, pending := range s.notifier.ListScheduled() {
		if pending.Data.Type != notify.TypeTaskReminder || pending.Data.TaskID != taskID {
			continue
		}
		if err := s.notifier.Cancel(pending.ID); err != nil {
			s.logger.Warn("reminder cancel failed", "task", taskID, "id", pending.ID, "error", err)
		}
	}
}

// RescheduleAll rebuilds the collaborator's state from the persisted task
// set: cancel everything, then re-derive a schedule for each incomplete
// future task, sequentially. Run at startup before the session is considered
// ready; the full rebuild avoids drift after crashes or missed mutations.
func (s *Scheduler) RescheduleAll(ctx context.Context, tasks []model.Task, spaces []model.TaskSpace, profile model.UserProfile) error {
	for _, pending := range s.notifier.ListScheduled() {
		if err := s.notifier.Cancel(pending.ID); err != nil {
			return fmt.Errorf("reminder: cancel %s: %w", pending.ID, err)
		}
	}

	byID := make(map[string]model.TaskSpace, len(spaces))
	for _, space := range spaces {
		byID[space.ID] = space
	}

	now := s.clock.Now()
	count := 0
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if task.Completed || task.IsTemplate() || !task.StartTime.After(now) {
			continue
		}
		offset := DefaultOffsetMinutes
		if task.ReminderMinutesBefore != nil {
			offset = *task.ReminderMinutesBefore
		}
		if s.schedule(ctx, task, byID[task.SpaceID], profile, offset) {
			count++
		}
	}
	s.logger.Info("reminders rescheduled", "scheduled", count, "tasks", len(tasks))
	return nil
}
