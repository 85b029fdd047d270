package commands

import (
	"fmt"
	"strings"
	"time"

	"dayplan/internal/app"
	"dayplan/internal/model"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want RFC3339 or \"2006-01-02 15:04\")", value)
}

func parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized day %q (want 2006-01-02)", value)
	}
	return t, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

func parseWeekdays(value string) ([]time.Weekday, error) {
	if value == "" {
		return nil, nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(value, ",") {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return nil, fmt.Errorf("unrecognized weekday %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

// resolveSpace accepts a space id or a case-insensitive space name.
func resolveSpace(svc *app.Service, ref string) (model.TaskSpace, error) {
	if space, err := svc.Space(ref); err == nil {
		return space, nil
	}
	for _, space := range svc.Spaces() {
		if strings.EqualFold(space.Name, ref) {
			return space, nil
		}
	}
	return model.TaskSpace{}, fmt.Errorf("no task space %q", ref)
}
