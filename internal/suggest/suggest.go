// Package suggest produces the short contextual strings carried in reminder
// notifications. A remote generator supplies the text; failures of any kind
// fall back to deterministic keyword-matched templates so a reminder always
// has a body.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dayplan/internal/model"
)

// Generator is the abstract text-suggestion collaborator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Request carries the context a suggestion is built from.
type Request struct {
	TaskTitle       string
	TaskDescription string
	StartTime       time.Time
	SpaceName       string
	UserName        string
	Interests       []string
	Checklist       []model.ChecklistItem
}

// Service wraps a Generator with a TTL cache and the fallback table.
type Service struct {
	generator Generator
	cache     *Cache
	timeout   time.Duration
}

const defaultTimeout = 10 * time.Second

func NewService(generator Generator, cache *Cache, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{generator: generator, cache: cache, timeout: timeout}
}

// Suggest returns a short body string for the request. It never fails: a
// missing generator, timeout, or malformed response all degrade to the
// keyword fallback. Only generated responses are cached.
func (s *Service) Suggest(ctx context.Context, req Request) string {
	key := cacheKey(req)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached
		}
	}
	if s.generator == nil {
		return Fallback(req)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, buildPrompt(req))
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		return Fallback(req)
	}
	if s.cache != nil {
		s.cache.Put(key, text)
	}
	return text
}

// cacheKey buckets requests by the leading word of the title, the space and
// the start hour, so near-identical reminders within the hour share one
// generator call.
func cacheKey(req Request) string {
	head := strings.ToLower(req.TaskTitle)
	if fields := strings.Fields(head); len(fields) > 0 {
		head = fields[0]
	}
	return fmt.Sprintf("%s-%s-%d", head, req.SpaceName, req.StartTime.Hour())
}

type promptPayload struct {
	User      string   `json:"user"`
	Task      string   `json:"task"`
	Desc      string   `json:"desc"`
	Time      string   `json:"time"`
	Day       string   `json:"day"`
	Period    string   `json:"period"`
	Space     string   `json:"space"`
	Interests []string `json:"interests"`
	Checklist []string `json:"checklist"`
}

const systemPrompt = "You are a helpful task assistant. Provide brief, actionable suggestions (max 40 words). Be context-aware and encouraging."

func buildPrompt(req Request) string {
	user := req.UserName
	if user == "" {
		user = "User"
	}
	items := make([]string, 0, len(req.Checklist))
	for _, item := range req.Checklist {
		items = append(items, item.Text)
	}
	payload := promptPayload{
		User:      user,
		Task:      req.TaskTitle,
		Desc:      req.TaskDescription,
		Time:      req.StartTime.Format("15:04"),
		Day:       req.StartTime.Weekday().String(),
		Period:    period(req.StartTime),
		Space:     req.SpaceName,
		Interests: req.Interests,
		Checklist: items,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%q", req.TaskTitle))
	}
	return fmt.Sprintf("%s\n\n%s\n\nProvide a helpful suggestion or tip:", systemPrompt, encoded)
}

func period(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// RequestForTask assembles a suggestion request from a task and its space.
func RequestForTask(task model.Task, space model.TaskSpace, profile model.UserProfile) Request {
	return Request{
		TaskTitle:       task.Title,
		TaskDescription: task.Description,
		StartTime:       task.StartTime,
		SpaceName:       space.Name,
		UserName:        profile.Name,
		Interests:       profile.InterestItems(),
		Checklist:       task.Checklist,
	}
}
