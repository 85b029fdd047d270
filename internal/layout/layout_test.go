package layout

import (
	"testing"
	"time"

	"dayplan/internal/model"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 4, hour, min, 0, 0, time.UTC)
}

func task(id string, start, end time.Time) model.Task {
	return model.Task{
		ID:        id,
		Title:     id,
		SpaceID:   "s",
		StartTime: start,
		EndTime:   end,
		Kind:      model.TaskStandalone,
	}
}

func TestLayoutIsolatedTaskGetsFullWidth(t *testing.T) {
	got := Layout([]model.Task{task("a", at(9, 0), at(10, 0))})
	p := got["a"]
	if p.Left != 0 || p.Width != 100 || p.Overflow {
		t.Fatalf("unexpected placement: %+v", p)
	}
}

func TestLayoutTwoOverlappingTasksSplitColumns(t *testing.T) {
	got := Layout([]model.Task{
		task("a", at(9, 0), at(10, 0)),
		task("b", at(9, 30), at(10, 30)),
	})
	pa, pb := got["a"], got["b"]
	if pa.Width != 50 || pb.Width != 50 {
		t.Fatalf("expected half widths, got %+v %+v", pa, pb)
	}
	if pa.Left == pb.Left {
		t.Fatalf("overlapping tasks share a column: %+v %+v", pa, pb)
	}
	if pa.Left != 0 || pb.Left != 50 {
		t.Fatalf("expected columns at 0%% and 50%%, got %+v %+v", pa, pb)
	}
}

func TestLayoutTouchingTasksDoNotSplit(t *testing.T) {
	got := Layout([]model.Task{
		task("a", at(9, 0), at(10, 0)),
		task("b", at(10, 0), at(11, 0)),
	})
	if got["a"].Width != 100 || got["b"].Width != 100 {
		t.Fatalf("tasks touching at an endpoint must not share a cluster: %+v", got)
	}
}

func TestLayoutThreeMutualOverlapsProduceOneOverflow(t *testing.T) {
	got := Layout([]model.Task{
		task("a", at(9, 0), at(10, 0)),
		task("b", at(9, 10), at(10, 10)),
		task("c", at(9, 20), at(10, 20)),
	})
	overflowCount := 0
	for _, p := range got {
		if p.Overflow {
			overflowCount++
		}
	}
	if overflowCount != 1 {
		t.Fatalf("expected exactly one overflow task, got %d", overflowCount)
	}
	if got["c"].Overflow != true {
		t.Fatalf("latest starter should overflow, got %+v", got)
	}
	if got["a"].Width != 50 || got["b"].Width != 50 {
		t.Fatalf("columned tasks should have half widths: %+v", got)
	}
}

func TestLayoutTransitiveChainSharesCluster(t *testing.T) {
	// a overlaps b, b overlaps c, a and c do not touch: one cluster of three,
	// but c can reuse a's column once a has ended.
	got := Layout([]model.Task{
		task("a", at(9, 0), at(10, 0)),
		task("b", at(9, 30), at(10, 30)),
		task("c", at(10, 0), at(11, 0)),
	})
	for id, p := range got {
		if p.Width != 50 {
			t.Fatalf("cluster member %s not columned: %+v", id, p)
		}
	}
	if got["c"].Left != 0 {
		t.Fatalf("c should reuse the first column: %+v", got["c"])
	}
	if got["c"].Overflow {
		t.Fatal("chain member must not overflow when a column is free")
	}
}

func TestLayoutStableForEqualStarts(t *testing.T) {
	tasks := []model.Task{
		task("first", at(9, 0), at(10, 0)),
		task("second", at(9, 0), at(9, 30)),
	}
	got := Layout(tasks)
	if got["first"].Left != 0 || got["second"].Left != 50 {
		t.Fatalf("equal starts must preserve input order: %+v", got)
	}

	// Same input again: identical result.
	again := Layout(tasks)
	for id := range got {
		if got[id] != again[id] {
			t.Fatalf("layout not deterministic for %s", id)
		}
	}
}

func TestLayoutIndependentClusters(t *testing.T) {
	got := Layout([]model.Task{
		task("a", at(9, 0), at(10, 0)),
		task("b", at(9, 30), at(10, 30)),
		task("solo", at(14, 0), at(15, 0)),
	})
	if got["solo"].Width != 100 {
		t.Fatalf("separate cluster leaked column widths: %+v", got["solo"])
	}
}

func TestTasksForDayFiltersTemplates(t *testing.T) {
	rule := &model.RecurrenceRule{Frequency: model.FrequencyDaily, Interval: 1}
	tasks := []model.Task{
		task("today", at(9, 0), at(10, 0)),
		task("tomorrow", at(9, 0).AddDate(0, 0, 1), at(10, 0).AddDate(0, 0, 1)),
		{
			ID: "tmpl", Title: "tmpl", SpaceID: "s", Kind: model.TaskTemplate,
			StartTime: at(9, 0), EndTime: at(10, 0), Recurrence: rule,
		},
	}
	got := TasksForDay(tasks, at(0, 0))
	if len(got) != 1 || got[0].ID != "today" {
		t.Fatalf("unexpected day filter result: %+v", got)
	}
}
