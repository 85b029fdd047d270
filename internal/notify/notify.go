// Package notify models the notification collaborator: schedule a payload
// to fire at a wall-clock time, cancel by identifier, and list what is
// pending. The collaborator is the sole source of truth for whether a
// reminder is scheduled; callers never mirror its state.
package notify

import (
	"errors"
	"time"
)

var ErrInvalidTriggerTime = errors.New("notify: invalid trigger time")

// Payload travels with a notification and is how reminders are found again:
// there is no cancel-by-task primitive, so cancellation lists and filters on
// the task id carried here.
type Payload struct {
	TaskID string `json:"taskId"`
	Type   string `json:"type"`
}

const TypeTaskReminder = "task_reminder"

// Request asks for one notification at TriggerAt.
type Request struct {
	Title     string
	Body      string
	Data      Payload
	TriggerAt time.Time
}

// Scheduled is one pending notification as reported by ListScheduled.
type Scheduled struct {
	ID   string
	Data Payload
}

// Notification is a due reminder emitted by the engine.
type Notification struct {
	ID        string
	Title     string
	Body      string
	Data      Payload
	TriggerAt time.Time
}

// Scheduler is the abstract collaborator surface. Cancel of an unknown id is
// a no-op, not an error.
type Scheduler interface {
	Schedule(req Request) (string, error)
	Cancel(id string) error
	ListScheduled() []Scheduled
}
