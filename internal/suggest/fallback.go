package suggest

import "strings"

// Fallback selects a generic body string by keyword-matching the task title
// and space name. Used whenever the generator is unavailable, times out, or
// returns nothing.
func Fallback(req Request) string {
	title := strings.ToLower(req.TaskTitle)
	space := strings.ToLower(req.SpaceName)

	switch {
	case strings.Contains(title, "gym") || strings.Contains(title, "workout"):
		if req.StartTime.Hour() < 12 {
			return "Great way to start your day!"
		}
		return "Time to energize!"
	case strings.Contains(title, "meeting"):
		return "Review your notes and be prepared!"
	case strings.Contains(title, "book"):
		return "Book early for best options!"
	case strings.Contains(space, "work") || strings.Contains(space, "office"):
		return "Stay focused and productive!"
	case strings.Contains(space, "personal"):
		return "Take your time and enjoy!"
	default:
		return "Time to get started!"
	}
}
