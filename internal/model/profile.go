package model

import "time"

type UserInterest struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type UserProfile struct {
	Name                    string         `json:"name,omitempty"`
	Interests               []UserInterest `json:"interests"`
	GeminiAPIKey            string         `json:"geminiApiKey,omitempty"`
	LocationPermission      bool           `json:"locationPermission"`
	NotificationsPermission bool           `json:"notificationsPermission"`
	OnboardingCompleted     bool           `json:"onboardingCompleted"`
	CreatedAt               time.Time      `json:"createdAt"`
}

// InterestItems flattens interests into a single list for prompt building.
func (p UserProfile) InterestItems() []string {
	var items []string
	for _, interest := range p.Interests {
		items = append(items, interest.Items...)
	}
	return items
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

type CalendarView string

const (
	ViewDay   CalendarView = "day"
	ViewWeek  CalendarView = "week"
	ViewMonth CalendarView = "month"
)

type AppSettings struct {
	Theme                         Theme        `json:"theme"`
	DefaultView                   CalendarView `json:"defaultView"`
	AISuggestionsEnabled          bool         `json:"aiSuggestionsEnabled"`
	ProactiveNotificationsEnabled bool         `json:"proactiveNotificationsEnabled"`
}

func DefaultSettings() AppSettings {
	return AppSettings{
		Theme:                         ThemeLight,
		DefaultView:                   ViewDay,
		AISuggestionsEnabled:          true,
		ProactiveNotificationsEnabled: true,
	}
}
