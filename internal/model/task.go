package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidKind      = errors.New("model: invalid task kind")
	ErrInvalidTimeRange = errors.New("model: task end time must be after start time")
	ErrInvalidReminder  = errors.New("model: reminder offset must not be negative")
)

type TaskKind string

const (
	TaskStandalone TaskKind = "standalone"
	TaskTemplate   TaskKind = "template"
	TaskInstance   TaskKind = "instance"
)

func (k TaskKind) IsValid() bool {
	switch k {
	case TaskStandalone, TaskTemplate, TaskInstance:
		return true
	default:
		return false
	}
}

type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a schedulable unit of work. Kind distinguishes a plain task, a
// recurring template carrying the rule, and a generated instance holding a
// back-reference to its template.
type Task struct {
	ID                    string          `json:"id"`
	Title                 string          `json:"title"`
	Description           string          `json:"description,omitempty"`
	SpaceID               string          `json:"taskSpaceId"`
	StartTime             time.Time       `json:"startTime"`
	EndTime               time.Time       `json:"endTime"`
	Completed             bool            `json:"completed"`
	Kind                  TaskKind        `json:"kind"`
	Recurrence            *RecurrenceRule `json:"recurrenceRule,omitempty"`
	ReminderMinutesBefore *int            `json:"reminderMinutesBefore,omitempty"`
	Checklist             []ChecklistItem `json:"checklist,omitempty"`
	TemplateID            string          `json:"recurringTemplateId,omitempty"`
	InstanceDate          time.Time       `json:"instanceDate,omitzero"`
	CreatedAt             time.Time       `json:"createdAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if strings.TrimSpace(t.SpaceID) == "" {
		return errors.New("model: task space id is required")
	}
	if t.StartTime.IsZero() || t.EndTime.IsZero() {
		return errors.New("model: task start and end times are required")
	}
	if !t.EndTime.After(t.StartTime) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidTimeRange,
			t.StartTime.Format(time.RFC3339), t.EndTime.Format(time.RFC3339))
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	switch t.Kind {
	case TaskTemplate:
		if t.Recurrence == nil {
			return errors.New("model: template task requires a recurrence rule")
		}
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	case TaskInstance:
		if strings.TrimSpace(t.TemplateID) == "" {
			return errors.New("model: instance task requires a template id")
		}
		if t.InstanceDate.IsZero() {
			return errors.New("model: instance task requires an instance date")
		}
	case TaskStandalone:
		if t.Recurrence != nil {
			return errors.New("model: standalone task must not carry a recurrence rule")
		}
		if t.TemplateID != "" {
			return errors.New("model: standalone task must not reference a template")
		}
	}
	if t.ReminderMinutesBefore != nil && *t.ReminderMinutesBefore < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidReminder, *t.ReminderMinutesBefore)
	}
	return nil
}

func (t Task) IsTemplate() bool { return t.Kind == TaskTemplate }

func (t Task) IsInstance() bool { return t.Kind == TaskInstance }

func (t Task) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}

// Normalize repairs the kind of tasks decoded from older blobs that predate
// the explicit kind field.
func (t *Task) Normalize() {
	if t.Kind != "" {
		return
	}
	switch {
	case t.TemplateID != "":
		t.Kind = TaskInstance
	case t.Recurrence != nil:
		t.Kind = TaskTemplate
	default:
		t.Kind = TaskStandalone
	}
}
