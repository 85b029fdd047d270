// Package layout partitions one day's tasks into display columns so that
// temporally overlapping tasks render side by side without collision.
package layout

import (
	"sort"
	"time"

	"dayplan/internal/model"
	"dayplan/internal/timeutil"
)

// Placement positions one task within the day column, as percentages of the
// available width. Overflow tasks carry a fixed marker position and are
// expected to be surfaced through a secondary affordance rather than
// rendered inline.
type Placement struct {
	Left     float64 `json:"left"`
	Width    float64 `json:"width"`
	Overflow bool    `json:"overflow"`
}

const (
	fullWidth  = 100
	halfWidth  = 50
	markerLeft = 90
	markerSize = 10
)

// Layout computes placements for a single day's task set. Two tasks share a
// cluster when connected by a chain of pairwise overlaps; within a cluster
// tasks are greedily assigned to one of exactly two columns, and tasks that
// fit neither column are marked overflow. The function is pure and must be
// recomputed whenever the day's task set changes.
func Layout(dayTasks []model.Task) map[string]Placement {
	placements := make(map[string]Placement, len(dayTasks))
	if len(dayTasks) == 0 {
		return placements
	}

	ordered := make([]model.Task, len(dayTasks))
	copy(ordered, dayTasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	for _, cluster := range clusters(ordered) {
		if len(cluster) == 1 {
			placements[cluster[0].ID] = Placement{Left: 0, Width: fullWidth}
			continue
		}
		assignColumns(cluster, placements)
	}
	return placements
}

// clusters groups the start-ordered tasks into maximal overlap chains: a
// task joins the open cluster while its start precedes the furthest end seen
// so far, which realizes transitive connectivity for intervals.
func clusters(ordered []model.Task) [][]model.Task {
	var out [][]model.Task
	var current []model.Task
	var reach struct {
		set bool
		end int64
	}

	for _, task := range ordered {
		if reach.set && task.StartTime.UnixNano() < reach.end {
			current = append(current, task)
			if end := task.EndTime.UnixNano(); end > reach.end {
				reach.end = end
			}
			continue
		}
		if len(current) > 0 {
			out = append(out, current)
		}
		current = []model.Task{task}
		reach.set = true
		reach.end = task.EndTime.UnixNano()
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// assignColumns places cluster members into two columns in start order: the
// first column whose last occupant has ended takes the task, and a task that
// fits neither becomes overflow instead of opening a third column.
func assignColumns(cluster []model.Task, placements map[string]Placement) {
	var colEnd [2]struct {
		set bool
		end int64
	}

	for _, task := range cluster {
		placed := false
		for col := 0; col < 2 && !placed; col++ {
			free := !colEnd[col].set || colEnd[col].end <= task.StartTime.UnixNano()
			if !free {
				continue
			}
			colEnd[col].set = true
			colEnd[col].end = task.EndTime.UnixNano()
			placements[task.ID] = Placement{Left: float64(col) * halfWidth, Width: halfWidth}
			placed = true
		}
		if !placed {
			placements[task.ID] = Placement{Left: markerLeft, Width: markerSize, Overflow: true}
		}
	}
}

// TasksForDay filters tasks whose start time falls on the given calendar
// day, ordered by start time. Templates are excluded; their dated instances
// stand in for them.
func TasksForDay(tasks []model.Task, day time.Time) []model.Task {
	var out []model.Task
	for _, task := range tasks {
		if task.IsTemplate() {
			continue
		}
		if timeutil.SameDay(day, task.StartTime) {
			out = append(out, task)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}
