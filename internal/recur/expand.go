// Package recur expands recurring task templates into concrete, dated
// occurrences bounded by a generation horizon.
package recur

import (
	"fmt"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/timeutil"
)

const (
	// DefaultHorizonDays is the forward window instances are pre-generated
	// for when a template is created or edited.
	DefaultHorizonDays = 30

	// MaxInstances bounds worst-case work for misconfigured rules.
	MaxInstances = 100
)

// Expand generates the instance set for a recurring template, walking day by
// day from the effective start to now + horizonDays inclusive. Expansion is
// clamped to today so expired occurrences are never re-materialized. The
// result is pure; callers replace the previously persisted instance set
// wholesale.
//
// Monthly rules match on the template's original day-of-month, so a rule
// anchored to the 29th, 30th or 31st yields no occurrence in months that are
// too short. The skip is a known limitation and is deliberately not clamped
// to the last day of the month.
func Expand(template model.Task, horizonDays int, now time.Time) []model.Task {
	if !template.IsTemplate() || template.Recurrence == nil {
		return nil
	}
	rule := *template.Recurrence
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	interval := rule.Interval
	if interval <= 0 {
		interval = 1
	}

	loc := template.StartTime.Location()
	anchorDay := timeutil.StartOfDay(template.StartTime)
	today := timeutil.StartOfDay(now.In(loc))

	cursor := anchorDay
	if cursor.Before(today) {
		cursor = today
	}
	last := today.AddDate(0, 0, horizonDays)
	if rule.EndDate != nil {
		endDay := timeutil.StartOfDay(rule.EndDate.In(loc))
		if endDay.Before(last) {
			last = endDay
		}
	}

	var instances []model.Task
	offset := daysBetween(anchorDay, cursor)
	for !cursor.After(last) && len(instances) < MaxInstances {
		if rule.EndAfterOccurrences > 0 && len(instances) >= rule.EndAfterOccurrences {
			break
		}
		if matchesDay(rule, interval, anchorDay, cursor, offset) {
			instances = append(instances, synthesize(template, cursor))
		}
		cursor = cursor.AddDate(0, 0, 1)
		offset++
	}
	return instances
}

func matchesDay(rule model.RecurrenceRule, interval int, anchorDay, day time.Time, offset int) bool {
	switch rule.Frequency {
	case model.FrequencyWeekly:
		return rule.Matches(day.Weekday())
	case model.FrequencyMonthly:
		return day.Day() == anchorDay.Day()
	default:
		// daily and custom step from the anchor in interval-day increments.
		return offset >= 0 && offset%interval == 0
	}
}

// daysBetween counts calendar days from a to b. Rounding absorbs the
// off-by-an-hour drift introduced by DST transitions.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Round(24*time.Hour) / (24 * time.Hour))
}

// synthesize derives one dated occurrence preserving the template's
// time-of-day and duration. The id is deterministic so regeneration of the
// same day produces the same instance.
func synthesize(template model.Task, day time.Time) model.Task {
	start := time.Date(day.Year(), day.Month(), day.Day(),
		template.StartTime.Hour(), template.StartTime.Minute(), template.StartTime.Second(), 0,
		template.StartTime.Location())
	end := start.Add(template.Duration())

	instance := template
	instance.ID = InstanceID(template.ID, start)
	instance.Kind = model.TaskInstance
	instance.StartTime = start
	instance.EndTime = end
	instance.Completed = false
	instance.Recurrence = nil
	instance.TemplateID = template.ID
	instance.InstanceDate = start
	if len(template.Checklist) > 0 {
		instance.Checklist = append([]model.ChecklistItem(nil), template.Checklist...)
	}
	return instance
}

// InstanceID derives the stable id for a template's occurrence at start.
func InstanceID(templateID string, start time.Time) string {
	return fmt.Sprintf("%s-%s", templateID, start.UTC().Format(time.RFC3339))
}
