package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"dayplan/internal/model"
)

const (
	KeyTasks    = "tasks"
	KeySpaces   = "task_spaces"
	KeyProfile  = "user_profile"
	KeySettings = "app_settings"
)

// Store is the CRUD facade over the persistence collaborator. Reads that
// fail to parse are treated as absent data: the corrupted key is cleared and
// an empty collection returned, never an error to the caller.
type Store struct {
	kv     KV
	logger *slog.Logger
}

func NewStore(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

func (s *Store) readJSON(key string, target any) bool {
	raw, err := s.kv.Get(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		s.logger.Warn("clearing corrupted key", "key", key, "error", err)
		if delErr := s.kv.Delete(key); delErr != nil {
			s.logger.Warn("failed to clear corrupted key", "key", key, "error", delErr)
		}
		return false
	}
	return true
}

func (s *Store) writeJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, raw); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Tasks() []model.Task {
	var tasks []model.Task
	if !s.readJSON(KeyTasks, &tasks) {
		return []model.Task{}
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks
}

func (s *Store) SaveTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return s.writeJSON(KeyTasks, tasks)
}

func (s *Store) AddTask(task model.Task) error {
	return s.SaveTasks(append(s.Tasks(), task))
}

// UpdateTask replaces the stored task with the same id.
func (s *Store) UpdateTask(task model.Task) error {
	tasks := s.Tasks()
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			return s.SaveTasks(tasks)
		}
	}
	return fmt.Errorf("storage: task %s: %w", task.ID, ErrNotFound)
}

func (s *Store) Task(id string) (model.Task, bool) {
	for _, task := range s.Tasks() {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func (s *Store) DeleteTask(id string) error {
	tasks := s.Tasks()
	kept := tasks[:0]
	for _, task := range tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	return s.SaveTasks(kept)
}

// ReplaceInstances swaps the whole persisted instance set of a template for
// the freshly generated one. Replace-wholesale is the required regeneration
// strategy; incremental patching would reintroduce drift.
func (s *Store) ReplaceInstances(templateID string, instances []model.Task) error {
	tasks := s.Tasks()
	kept := tasks[:0]
	for _, task := range tasks {
		if task.TemplateID != templateID {
			kept = append(kept, task)
		}
	}
	return s.SaveTasks(append(kept, instances...))
}

// InstancesOf lists the persisted instances generated from a template.
func (s *Store) InstancesOf(templateID string) []model.Task {
	var out []model.Task
	for _, task := range s.Tasks() {
		if task.TemplateID == templateID {
			out = append(out, task)
		}
	}
	return out
}

// DeleteTasksInSpace removes every task belonging to a space and returns the
// removed tasks so the caller can cancel their reminders.
func (s *Store) DeleteTasksInSpace(spaceID string) ([]model.Task, error) {
	tasks := s.Tasks()
	kept := tasks[:0]
	var removed []model.Task
	for _, task := range tasks {
		if task.SpaceID == spaceID {
			removed = append(removed, task)
		} else {
			kept = append(kept, task)
		}
	}
	if err := s.SaveTasks(kept); err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *Store) Spaces() []model.TaskSpace {
	var spaces []model.TaskSpace
	if !s.readJSON(KeySpaces, &spaces) {
		return []model.TaskSpace{}
	}
	return spaces
}

func (s *Store) SaveSpaces(spaces []model.TaskSpace) error {
	if spaces == nil {
		spaces = []model.TaskSpace{}
	}
	return s.writeJSON(KeySpaces, spaces)
}

// SaveSpace upserts by id.
func (s *Store) SaveSpace(space model.TaskSpace) error {
	spaces := s.Spaces()
	for i := range spaces {
		if spaces[i].ID == space.ID {
			spaces[i] = space
			return s.SaveSpaces(spaces)
		}
	}
	return s.SaveSpaces(append(spaces, space))
}

func (s *Store) Space(id string) (model.TaskSpace, bool) {
	for _, space := range s.Spaces() {
		if space.ID == id {
			return space, true
		}
	}
	return model.TaskSpace{}, false
}

func (s *Store) DeleteSpace(id string) error {
	spaces := s.Spaces()
	kept := spaces[:0]
	for _, space := range spaces {
		if space.ID != id {
			kept = append(kept, space)
		}
	}
	return s.SaveSpaces(kept)
}

func (s *Store) Profile() (model.UserProfile, bool) {
	var profile model.UserProfile
	if !s.readJSON(KeyProfile, &profile) {
		return model.UserProfile{}, false
	}
	return profile, true
}

func (s *Store) SaveProfile(profile model.UserProfile) error {
	return s.writeJSON(KeyProfile, profile)
}

func (s *Store) Settings() model.AppSettings {
	settings := model.DefaultSettings()
	if !s.readJSON(KeySettings, &settings) {
		return model.DefaultSettings()
	}
	return settings
}

func (s *Store) SaveSettings(settings model.AppSettings) error {
	return s.writeJSON(KeySettings, settings)
}

// ClearAll removes every key the planner owns. Destructive; callers must
// confirm with the user first.
func (s *Store) ClearAll() error {
	for _, key := range []string{KeyTasks, KeySpaces, KeyProfile, KeySettings} {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("storage: clear %s: %w", key, err)
		}
	}
	return nil
}
