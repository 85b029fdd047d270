package model

import (
	"errors"
	"testing"
	"time"
)

func validTask() Task {
	return Task{
		ID:        "t1",
		Title:     "Standup",
		SpaceID:   "s1",
		StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC),
		Kind:      TaskStandalone,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTaskValidateOK(t *testing.T) {
	if err := validTask().Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}
}

func TestTaskValidateRejectsBlankTitle(t *testing.T) {
	task := validTask()
	task.Title = "   "
	if err := task.Validate(); err == nil {
		t.Fatal("expected blank title to be rejected")
	}
}

func TestTaskValidateRejectsInvertedTimeRange(t *testing.T) {
	task := validTask()
	task.EndTime = task.StartTime
	if err := task.Validate(); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestTaskValidateTemplateRequiresRule(t *testing.T) {
	task := validTask()
	task.Kind = TaskTemplate
	if err := task.Validate(); err == nil {
		t.Fatal("expected template without rule to be rejected")
	}
	task.Recurrence = &RecurrenceRule{Frequency: FrequencyWeekly, Interval: 1, DaysOfWeek: []time.Weekday{time.Monday}}
	if err := task.Validate(); err != nil {
		t.Fatalf("template with rule rejected: %v", err)
	}
}

func TestTaskValidateInstanceRequiresBackReference(t *testing.T) {
	task := validTask()
	task.Kind = TaskInstance
	if err := task.Validate(); err == nil {
		t.Fatal("expected instance without template id to be rejected")
	}
	task.TemplateID = "tmpl"
	task.InstanceDate = task.StartTime
	if err := task.Validate(); err != nil {
		t.Fatalf("instance with back-reference rejected: %v", err)
	}
}

func TestTaskValidateRejectsNegativeReminder(t *testing.T) {
	task := validTask()
	minutes := -5
	task.ReminderMinutesBefore = &minutes
	if err := task.Validate(); !errors.Is(err, ErrInvalidReminder) {
		t.Fatalf("expected ErrInvalidReminder, got %v", err)
	}
}

func TestTaskNormalizeInfersKind(t *testing.T) {
	task := validTask()
	task.Kind = ""
	task.TemplateID = "tmpl"
	task.Normalize()
	if task.Kind != TaskInstance {
		t.Fatalf("expected instance kind, got %q", task.Kind)
	}

	task = validTask()
	task.Kind = ""
	task.Recurrence = &RecurrenceRule{Frequency: FrequencyDaily, Interval: 1}
	task.Normalize()
	if task.Kind != TaskTemplate {
		t.Fatalf("expected template kind, got %q", task.Kind)
	}

	task = validTask()
	task.Kind = ""
	task.Normalize()
	if task.Kind != TaskStandalone {
		t.Fatalf("expected standalone kind, got %q", task.Kind)
	}
}
