package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

var (
	ErrInvalidFrequency = errors.New("model: invalid recurrence frequency")
	ErrInvalidInterval  = errors.New("model: invalid recurrence interval")
	ErrInvalidWeekday   = errors.New("model: invalid recurrence weekday")
)

// RecurrenceRule describes how a template task repeats. DaysOfWeek is
// meaningful only for weekly rules. EndDate and EndAfterOccurrences are
// optional termination conditions; absent both, expansion is bounded only by
// the generation horizon.
type RecurrenceRule struct {
	Frequency           Frequency      `json:"frequency"`
	Interval            int            `json:"interval"`
	DaysOfWeek          []time.Weekday `json:"daysOfWeek,omitempty"`
	EndDate             *time.Time     `json:"endDate,omitempty"`
	EndAfterOccurrences int            `json:"endAfterOccurrences,omitempty"`
}

func (r RecurrenceRule) Validate() error {
	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, r.Frequency)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, r.Interval)
	}
	if len(r.DaysOfWeek) > 0 {
		s := make([]int, 0, len(r.DaysOfWeek))
		for _, d := range r.DaysOfWeek {
			if d < time.Sunday || d > time.Saturday {
				return fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
			}
			s = append(s, int(d))
		}
		sort.Ints(s)
		for i := 1; i < len(s); i++ {
			if s[i] == s[i-1] {
				return errors.New("model: duplicate weekday in recurrence")
			}
		}
	}
	if r.EndAfterOccurrences < 0 {
		return errors.New("model: end-after-occurrences must not be negative")
	}
	return nil
}

// Matches reports whether a weekly rule includes the given weekday.
func (r RecurrenceRule) Matches(day time.Weekday) bool {
	for _, d := range r.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}
