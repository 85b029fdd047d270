package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrInvalidColor = errors.New("model: invalid space color")

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TaskSpace is a named, colored grouping of tasks. Tasks reference it by id;
// deleting a space cascades to its tasks.
type TaskSpace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (s TaskSpace) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: space id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("model: space name is required")
	}
	if !hexColorPattern.MatchString(s.Color) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, s.Color)
	}
	return nil
}
